package checkout

import (
	"context"
	"fmt"
	"time"

	"homely/config"
	appointmentRepo "homely/database/repository/appointment"
	"homely/models"
	"homely/services/payment"

	"go.uber.org/zap"
)

// Finalization outcomes.
const (
	OutcomeConfirmed       = "confirmed"
	OutcomeRedirectPending = "redirect_pending"
)

// FinalizeOutcome is the discriminated result of dispatching a finalized
// order: either the appointment is already confirmed, or control is about
// to leave for the external gateway.
type FinalizeOutcome struct {
	Status        string `json:"status"`
	AppointmentID string `json:"appointmentId"`
	PaymentURL    string `json:"paymentUrl,omitempty"`
}

// ReconcileScheduler enqueues the delayed cancellation of a pending
// appointment orphaned by a failed or never-completed gateway session.
type ReconcileScheduler interface {
	ScheduleCancelPending(appointmentID string, after time.Duration) error
}

// PaymentDispatcher owns the two finalization paths so callers never
// re-implement the direct-vs-redirect branch.
type PaymentDispatcher struct {
	Appointments appointmentRepo.AppointmentRepository
	Gateway      payment.Gateway
	Reconciler   ReconcileScheduler
	Logger       *zap.Logger
}

// Finalize commits the order. Direct methods confirm immediately. Redirect
// methods create the appointment as pending, request a gateway session
// scoped to its id and exact total, and hand back the payment URL. A
// gateway failure leaves the pending appointment in place; the scheduled
// reconciliation cancels it if it never completes.
func (d *PaymentDispatcher) Finalize(ctx context.Context, req models.AppointmentRequest, method models.PaymentMethod) (*FinalizeOutcome, error) {
	if !method.Redirect {
		appt, err := d.Appointments.Create(ctx, req, models.AppointmentConfirmed)
		if err != nil {
			return nil, NewSubmissionError(fmt.Sprintf("failed to create appointment: %v", err))
		}
		d.Logger.Info("appointment confirmed",
			zap.String("appointmentID", appt.ID),
			zap.String("method", method.Code))
		return &FinalizeOutcome{Status: OutcomeConfirmed, AppointmentID: appt.ID}, nil
	}

	appt, err := d.Appointments.Create(ctx, req, models.AppointmentPending)
	if err != nil {
		return nil, NewSubmissionError(fmt.Sprintf("failed to create pending appointment: %v", err))
	}

	paymentURL, err := d.Gateway.CreateSession(ctx, models.PaymentSessionRequest{
		Amount:      req.Breakdown.TotalToPay,
		Currency:    req.Breakdown.Currency,
		Description: req.ServiceDescription,
		OrderID:     appt.ID,
		ReturnURL:   config.AppConfig.PaymentReturnURL,
		CancelURL:   config.AppConfig.PaymentCancelURL,
	})
	if err != nil {
		d.Logger.Error("payment session creation failed",
			zap.String("appointmentID", appt.ID), zap.Error(err))
		d.scheduleReconcile(appt.ID)
		return nil, &PaymentGatewayError{
			AppointmentID: appt.ID,
			Message:       err.Error(),
		}
	}

	// Control does not return to this process after the redirect; the
	// sweep also covers sessions the customer walks away from.
	d.scheduleReconcile(appt.ID)

	d.Logger.Info("payment session created",
		zap.String("appointmentID", appt.ID),
		zap.Float64("amount", req.Breakdown.TotalToPay))
	return &FinalizeOutcome{
		Status:        OutcomeRedirectPending,
		AppointmentID: appt.ID,
		PaymentURL:    paymentURL,
	}, nil
}

func (d *PaymentDispatcher) scheduleReconcile(appointmentID string) {
	if d.Reconciler == nil {
		return
	}
	after := time.Duration(config.AppConfig.PendingReconcileMinutes) * time.Minute
	if err := d.Reconciler.ScheduleCancelPending(appointmentID, after); err != nil {
		d.Logger.Warn("failed to schedule pending reconciliation",
			zap.String("appointmentID", appointmentID), zap.Error(err))
	}
}
