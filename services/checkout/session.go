package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homely/config"
	"homely/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "checkout:session:"

// ErrSessionNotFound is returned only by internal loads; public entry
// points transparently rebuild an empty session instead.
var ErrSessionNotFound = fmt.Errorf("checkout session not found or expired")

// StartSession creates a fresh checkout session at item selection.
func (s *DefaultCheckoutService) StartSession(ctx context.Context, userID string) (*models.CheckoutSession, error) {
	session := &models.CheckoutSession{
		SessionID:  uuid.New().String(),
		UserID:     userID,
		Step:       models.StepItemSelection,
		Cart:       models.NewCart(),
		Submission: models.SubmissionIdle,
		CreatedAt:  time.Now(),
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("checkout session started", zap.String("sessionID", session.SessionID))
	return session, nil
}

// GetSession returns the live session, or rebuilds one from the
// continuity guard when the live copy is gone (session start). The guard's
// precedence decides whether the rebuilt session restores state or starts
// empty.
func (s *DefaultCheckoutService) GetSession(ctx context.Context, sessionID, userID string) (*models.CheckoutSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err == nil {
		if session.UserID == "" && userID != "" {
			session.UserID = userID
			if err := s.saveSession(ctx, session); err != nil {
				return nil, err
			}
		}
		return session, nil
	}
	if err != ErrSessionNotFound {
		return nil, err
	}

	snap, err := s.Guard.LoadOnInit(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session = &models.CheckoutSession{
		SessionID:  sessionID,
		UserID:     userID,
		Step:       models.StepItemSelection,
		Cart:       models.NewCart(),
		Submission: models.SubmissionIdle,
		CreatedAt:  time.Now(),
	}
	if snap != nil {
		session.Cart = snap.Cart
		session.Selection = snap.Selection
		s.Logger.Info("checkout session restored from snapshot",
			zap.String("sessionID", sessionID), zap.Int("items", len(snap.Cart.Items)))
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AbandonSession is the explicit user abandonment: the cart is cleared
// exactly once, atomically, never partially.
func (s *DefaultCheckoutService) AbandonSession(ctx context.Context, sessionID string) error {
	if err := s.Guard.ClearAll(ctx, sessionID); err != nil {
		return err
	}
	s.Cache.Del(ctx, sessionKeyPrefix+sessionID)
	s.Logger.Info("checkout session abandoned", zap.String("sessionID", sessionID))
	return nil
}

func (s *DefaultCheckoutService) loadSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	data, err := s.Cache.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}
	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		// Malformed session state degrades to a fresh start.
		s.Logger.Warn("discarding malformed checkout session",
			zap.String("sessionID", sessionID), zap.Error(err))
		s.Cache.Del(ctx, sessionKeyPrefix+sessionID)
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *DefaultCheckoutService) saveSession(ctx context.Context, session *models.CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKeyPrefix+session.SessionID, data, config.SessionTTL()).Err(); err != nil {
		return fmt.Errorf("failed to store checkout session: %w", err)
	}
	return nil
}

// persistState saves the live session and, unless the booking already
// went through, the continuity snapshot. Every cart or selection mutation
// funnels through here.
func (s *DefaultCheckoutService) persistState(ctx context.Context, session *models.CheckoutSession) error {
	if err := s.saveSession(ctx, session); err != nil {
		return err
	}
	if session.Submitted() {
		return nil
	}
	return s.Guard.Save(ctx, session.SessionID, models.CheckoutSnapshot{
		Cart:      session.Cart,
		Selection: session.Selection,
	})
}
