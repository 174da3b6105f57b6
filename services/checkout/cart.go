package checkout

import (
	"context"

	"homely/models"

	"go.uber.org/zap"
)

// AddItem resolves the service through the catalog and adds one unit.
// Exceeding MaxQuantity is a silent no-op.
func (s *DefaultCheckoutService) AddItem(ctx context.Context, sessionID, serviceID string) (*models.CheckoutSession, error) {
	session, err := s.mutableSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := session.Cart.Items[serviceID]; ok {
		if !session.Cart.AddLine(session.Cart.Items[serviceID]) {
			// MaxQuantity reached; nothing changed, nothing to persist.
			return session, nil
		}
	} else {
		item, err := s.Catalog.GetByServiceID(ctx, serviceID)
		if err != nil {
			return nil, NewValidationError("unknown service: " + serviceID)
		}
		if !session.Cart.AddLine(item.LineItem()) {
			return session, nil
		}
	}

	s.revokeStaleOffer(session)
	if err := s.persistState(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RemoveOneUnit decrements a line, deleting it at zero.
func (s *DefaultCheckoutService) RemoveOneUnit(ctx context.Context, sessionID, serviceID string) (*models.CheckoutSession, error) {
	session, err := s.mutableSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Cart.RemoveOneUnit(serviceID)
	s.revokeStaleOffer(session)
	if err := s.persistState(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RemoveItem deletes a line entirely regardless of quantity.
func (s *DefaultCheckoutService) RemoveItem(ctx context.Context, sessionID, serviceID string) (*models.CheckoutSession, error) {
	session, err := s.mutableSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Cart.Remove(serviceID)
	s.revokeStaleOffer(session)
	if err := s.persistState(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// mutableSession loads a session and rejects mutation on locked or
// completed checkouts.
func (s *DefaultCheckoutService) mutableSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
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
	return session, nil
}

// revokeStaleOffer drops an applied offer whose cart fingerprint no longer
// matches. A discount computed against an old subtotal must never be
// silently reused.
func (s *DefaultCheckoutService) revokeStaleOffer(session *models.CheckoutSession) {
	if session.Offer == nil {
		return
	}
	if session.Offer.CartFingerprint != session.Cart.Fingerprint() {
		s.Logger.Info("revoking offer after cart change",
			zap.String("sessionID", session.SessionID),
			zap.String("code", session.Offer.Code))
		session.Offer = nil
	}
}
