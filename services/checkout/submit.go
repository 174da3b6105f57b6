package checkout

import (
	"context"
	"time"

	"homely/models"

	"go.uber.org/zap"
)

const submitLockPrefix = "checkout:submitting:"

// submitLockTTL bounds how long a crashed submission can hold the lock.
const submitLockTTL = 30 * time.Second

// Submit materializes the appointment request and dispatches it exactly
// once. A second invocation while the first is pending is rejected by the
// submission lock.
func (s *DefaultCheckoutService) Submit(ctx context.Context, sessionID, notes string) (*FinalizeOutcome, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Locked {
		return nil, ErrSessionLocked
	}
	if session.Submitted() {
		return nil, ErrAlreadySubmitted
	}
	if err := validateForSubmission(session); err != nil {
		return nil, err
	}

	method, ok := PaymentMethodByCode(session.PaymentMethod)
	if !ok {
		return nil, NewValidationError("unknown payment method: " + session.PaymentMethod)
	}

	// At-most-once guard: the first caller wins the lock, everyone else
	// gets rejected until it is released or expires.
	acquired, err := s.Cache.SetNX(ctx, submitLockPrefix+sessionID, time.Now().UnixNano(), submitLockTTL).Result()
	if err != nil {
		return nil, NewSubmissionError("failed to acquire submission lock: " + err.Error())
	}
	if !acquired {
		return nil, ErrSubmissionInProgress
	}

	session.Notes = notes
	session.Submission = models.SubmissionInFlight
	if err := s.saveSession(ctx, session); err != nil {
		s.releaseSubmitLock(ctx, sessionID)
		return nil, err
	}

	req := models.AppointmentRequest{
		UserID:             session.UserID,
		ServiceDescription: session.Cart.Description(),
		Date:               session.Selection.Date,
		Time:               session.Selection.Time,
		Address:            *session.Selection.Address,
		Breakdown:          *buildQuote(session),
		PaymentMethod:      method.Label,
		Notes:              notes,
	}

	outcome, err := s.Dispatcher.Finalize(ctx, req, method)
	if err != nil {
		// The cart is deliberately kept so the user can retry.
		session.Submission = models.SubmissionFailed
		if saveErr := s.saveSession(ctx, session); saveErr != nil {
			s.Logger.Error("failed to record failed submission", zap.Error(saveErr))
		}
		s.releaseSubmitLock(ctx, sessionID)
		return nil, err
	}

	switch outcome.Status {
	case OutcomeConfirmed:
		session.Submission = models.SubmissionDone
		session.AppointmentID = outcome.AppointmentID
		session.Cart = models.NewCart()
		session.Offer = nil
	case OutcomeRedirectPending:
		// Control leaves for the gateway and does not come back here;
		// lock the wizard and purge persisted state before navigating away.
		session.Locked = true
		session.AppointmentID = outcome.AppointmentID
	}

	if err := s.Guard.ClearAll(ctx, sessionID); err != nil {
		s.Logger.Error("failed to clear continuity state after submission",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
	if err := s.saveSession(ctx, session); err != nil {
		s.Logger.Error("failed to persist submitted session", zap.Error(err))
	}

	s.Logger.Info("booking submitted",
		zap.String("sessionID", sessionID),
		zap.String("appointmentID", outcome.AppointmentID),
		zap.String("outcome", outcome.Status))
	return outcome, nil
}

func (s *DefaultCheckoutService) releaseSubmitLock(ctx context.Context, sessionID string) {
	s.Cache.Del(ctx, submitLockPrefix+sessionID)
}

// validateForSubmission checks the completeness predicates one last time;
// these are local checks, no network call is made for a failure here.
func validateForSubmission(session *models.CheckoutSession) error {
	if session.Step != models.StepReviewAndPay {
		return NewValidationError("checkout has not reached review")
	}
	if session.Cart.IsEmpty() {
		return NewValidationError("cart is empty")
	}
	if session.Selection.Address == nil {
		return NewValidationError("address is required")
	}
	if session.Selection.Date == "" || session.Selection.Time == "" {
		return NewValidationError("date and time are required")
	}
	if session.PaymentMethod == "" {
		return NewValidationError("payment method is required")
	}
	return nil
}
