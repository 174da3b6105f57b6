package checkout

import (
	"context"

	"homely/models"
)

// SetAddress records the chosen service address. Addresses are always
// explicit; cross-field validation stays with the address collaborator.
func (s *DefaultCheckoutService) SetAddress(ctx context.Context, sessionID string, addr models.Address) (*models.CheckoutSession, error) {
	session, err := s.mutableSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if addr.ID == "" {
		return nil, NewValidationError("address is required")
	}

	session.Selection.Address = &addr
	if err := s.persistState(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetSchedule records date, time and any extra fee for the slot. A time
// without its matching date is rejected; slot availability itself is the
// availability collaborator's concern.
func (s *DefaultCheckoutService) SetSchedule(ctx context.Context, sessionID, date, timeOfDay string, extraFee float64) (*models.CheckoutSession, error) {
	session, err := s.mutableSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if timeOfDay != "" && date == "" {
		return nil, NewValidationError("a time slot requires its date")
	}

	session.Selection.Date = date
	session.Selection.Time = timeOfDay
	session.Selection.ExtraFee = extraFee
	if err := s.persistState(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetPaymentMethod records the chosen payment method for review.
func (s *DefaultCheckoutService) SetPaymentMethod(ctx context.Context, sessionID, methodCode string) (*models.CheckoutSession, error) {
	session, err := s.mutableSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := PaymentMethodByCode(methodCode); !ok {
		return nil, NewValidationError("unknown payment method: " + methodCode)
	}

	session.PaymentMethod = methodCode
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
