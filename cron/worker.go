package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"homely/config"
	appointmentRepo "homely/database/repository/appointment"
	"homely/models"
	"homely/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReconcileWorker runs the async worker in background. It consumes the
// delayed reconciliation tasks the payment dispatcher enqueues and also
// sweeps for stragglers periodically.
func InitReconcileWorker(repo appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReconcilePending, handleReconcileTask(repo))

	// Periodic sweep for pending appointments no task covers.
	go sweepStalePending(repo)

	// Start async worker with retry logic
	go func() {
		log.Println("[ReconcileWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReconcileTask(repo appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReconcileHandler] Invalid payload: %v", err)
			return err
		}

		appt, err := repo.GetByID(ctx, p.AppointmentID)
		if err != nil {
			log.Printf("[ReconcileHandler] Appointment %s not found: %v", p.AppointmentID, err)
			return nil
		}
		if appt.Status != models.AppointmentPending {
			// Gateway confirmed or the appointment was handled elsewhere.
			return nil
		}

		log.Printf("[ReconcileHandler] Cancelling stale pending appointment %s", p.AppointmentID)
		return repo.UpdateStatus(ctx, p.AppointmentID, models.AppointmentCancelled)
	}
}

// sweepStalePending periodically cancels pending appointments older than
// the reconciliation window, catching any that lost their delayed task.
func sweepStalePending(repo appointmentRepo.AppointmentRepository) {
	ctx := context.Background()
	interval := 10 * time.Minute

	for {
		time.Sleep(interval)

		cutoff := time.Now().Add(-time.Duration(config.AppConfig.PendingReconcileMinutes) * time.Minute)
		stale, err := repo.ListStalePending(ctx, cutoff)
		if err != nil {
			log.Printf("[ReconcileWorker] Sweep failed: %v", err)
			continue
		}
		for _, appt := range stale {
			if err := repo.UpdateStatus(ctx, appt.ID, models.AppointmentCancelled); err != nil {
				log.Printf("[ReconcileWorker] Failed to cancel appointment %s: %v", appt.ID, err)
			} else {
				log.Printf("[ReconcileWorker] Cancelled stale pending appointment %s", appt.ID)
			}
		}
	}
}
