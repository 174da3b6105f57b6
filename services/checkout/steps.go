package checkout

import (
	"context"

	"homely/models"

	"go.uber.org/zap"
)

// Next advances the wizard when the current step's completeness predicate
// holds. Leaving item selection unauthenticated triggers the
// authentication interruption instead of advancing: the state is
// snapshotted for the hand-off and ErrAuthRequired is returned.
func (s *DefaultCheckoutService) Next(ctx context.Context, sessionID string, authenticated bool, userID string) (*models.CheckoutSession, error) {
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

	switch session.Step {
	case models.StepItemSelection:
		if session.Cart.IsEmpty() {
			return nil, NewValidationError("cart is empty")
		}
		if !authenticated {
			if err := s.Guard.SaveForHandoff(ctx, sessionID, models.CheckoutSnapshot{
				Cart:      session.Cart,
				Selection: session.Selection,
			}); err != nil {
				return nil, err
			}
			s.Logger.Info("checkout interrupted for authentication",
				zap.String("sessionID", sessionID))
			return nil, ErrAuthRequired
		}
		session.UserID = userID
		session.Step = models.StepAddress

	case models.StepAddress:
		if session.Selection.Address == nil {
			return nil, NewValidationError("address is required")
		}
		session.Step = models.StepSchedule

	case models.StepSchedule:
		if session.Selection.Date == "" || session.Selection.Time == "" {
			return nil, NewValidationError("date and time are required")
		}
		session.Step = models.StepReviewAndPay

	case models.StepReviewAndPay:
		if session.PaymentMethod == "" {
			return nil, NewValidationError("payment method is required")
		}
		// There is no step beyond review; submission is the forward action.
		return session, nil
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Prev always moves backward. From item selection it exits checkout
// entirely, reported via the second return value; exiting is not
// abandonment, the cart stays persisted.
func (s *DefaultCheckoutService) Prev(ctx context.Context, sessionID string) (*models.CheckoutSession, bool, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if session.Locked {
		return nil, false, ErrSessionLocked
	}

	if session.Step == models.StepItemSelection {
		return session, true, nil
	}
	session.Step--
	if err := s.saveSession(ctx, session); err != nil {
		return nil, false, err
	}
	return session, false, nil
}

// GoTo jumps to a previously visited step, or restarts at item selection.
// Skipping ahead is never allowed.
func (s *DefaultCheckoutService) GoTo(ctx context.Context, sessionID string, step models.CheckoutStep) (*models.CheckoutSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Locked {
		return nil, ErrSessionLocked
	}
	if step < models.StepItemSelection || step > models.StepReviewAndPay {
		return nil, NewValidationError("unknown checkout step")
	}
	if step > session.Step && step != models.StepItemSelection {
		return nil, NewValidationError("cannot skip ahead to an unvisited step")
	}

	session.Step = step
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
