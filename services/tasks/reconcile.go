package tasks

import (
	"encoding/json"
	"time"

	"homely/config"

	"github.com/hibiken/asynq"
)

const TypeReconcilePending = "appointment:reconcile"

// ReconcilePayload identifies the pending appointment to re-check.
type ReconcilePayload struct {
	AppointmentID string `json:"appointmentId"`
}

// NewReconcileTask builds the delayed task that cancels a pending
// appointment if its payment session never completes.
func NewReconcileTask(appointmentID string, after time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ReconcilePayload{AppointmentID: appointmentID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReconcilePending, b)
	opts := []asynq.Option{asynq.ProcessIn(after), asynq.MaxRetry(3)}

	return task, opts, nil
}

// Scheduler enqueues reconciliation tasks on the shared Redis broker.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler creates a task scheduler over the configured task queue.
func NewScheduler() *Scheduler {
	return &Scheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskQueueDB,
		}),
	}
}

// ScheduleCancelPending enqueues the delayed cancellation check.
func (s *Scheduler) ScheduleCancelPending(appointmentID string, after time.Duration) error {
	task, opts, err := NewReconcileTask(appointmentID, after)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}
