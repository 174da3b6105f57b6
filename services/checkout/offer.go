package checkout

import (
	"context"
	"strings"

	"homely/models"
	"homely/services/offers"

	"go.uber.org/zap"
)

// ApplyOffer validates a code against the rules collaborator and binds the
// resulting discount to the current subtotal. A failed validation leaves
// any previously applied offer untouched. If the cart changed while the
// validation was in flight the result is discarded as stale.
func (s *DefaultCheckoutService) ApplyOffer(ctx context.Context, sessionID, code string) (*models.CheckoutSession, error) {
	session, err := s.mutableSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Cart.IsEmpty() {
		return nil, NewValidationError("cart is empty")
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, NewValidationError("offer code is required")
	}

	// The subtotal and fingerprint the validation runs against.
	subtotal := session.Cart.Subtotal()
	fingerprint := session.Cart.Fingerprint()

	result, err := s.Rules.Validate(ctx, code, subtotal, session.Cart.ServiceIDs())
	if err != nil {
		return nil, err
	}

	// Re-read the session: the cart may have mutated while the rules call
	// was in flight. A discount computed against an obsolete subtotal is
	// never applied.
	session, err = s.mutableSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Cart.Fingerprint() != fingerprint {
		s.Logger.Warn("discarding stale offer validation",
			zap.String("sessionID", sessionID), zap.String("code", code))
		return nil, offers.NewOfferError(offers.ReasonStale, "cart changed during validation; apply the code again")
	}

	discount := result.DiscountAmount
	if discount <= 0 {
		discount = ComputeDiscountAmount(result.DiscountType, result.DiscountValue, subtotal)
	}
	if discount > subtotal {
		discount = subtotal
	}

	session.Offer = &models.Offer{
		Code:            code,
		Name:            result.Name,
		DiscountType:    result.DiscountType,
		DiscountValue:   result.DiscountValue,
		DiscountAmount:  discount,
		AppliedSubtotal: subtotal,
		CartFingerprint: fingerprint,
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("offer applied",
		zap.String("sessionID", sessionID),
		zap.String("code", code),
		zap.Float64("discount", discount))
	return session, nil
}

// RevokeOffer unconditionally clears any applied offer and its discount.
func (s *DefaultCheckoutService) RevokeOffer(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	session, err := s.mutableSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Offer = nil
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
