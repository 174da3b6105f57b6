package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homely/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	snapshotKeyPrefix = "checkout:snap:"
	pendingKeyPrefix  = "checkout:pending:"
	clearedKeyPrefix  = "checkout:cleared:"
)

// ContinuityGuard is the only component allowed to touch the durable
// snapshot storage. It makes a checkout survive a forced navigation away
// (the authentication hand-off) and guarantees a completed or explicitly
// cleared booking is never resurrected by a later load.
type ContinuityGuard struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewContinuityGuard creates a guard over the given snapshot store.
// Snapshots outlive the checkout session itself so a slow authentication
// round trip cannot lose the cart.
func NewContinuityGuard(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ContinuityGuard {
	return &ContinuityGuard{client: client, ttl: ttl, logger: logger}
}

// Save writes the normal snapshot and removes any clear-marker: a fresh
// save always means the user intends the cart to persist.
func (g *ContinuityGuard) Save(ctx context.Context, sessionID string, snap models.CheckoutSnapshot) error {
	snap.SavedAt = time.Now()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout snapshot: %w", err)
	}
	if err := g.client.Set(ctx, snapshotKeyPrefix+sessionID, data, g.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save checkout snapshot: %w", err)
	}
	g.client.Del(ctx, clearedKeyPrefix+sessionID)
	return nil
}

// SaveForHandoff writes the higher-priority pending snapshot immediately
// before an authentication redirect. It is consumed on the next load.
func (g *ContinuityGuard) SaveForHandoff(ctx context.Context, sessionID string, snap models.CheckoutSnapshot) error {
	snap.SavedAt = time.Now()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal handoff snapshot: %w", err)
	}
	if err := g.client.Set(ctx, pendingKeyPrefix+sessionID, data, g.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save handoff snapshot: %w", err)
	}
	return nil
}

// ClearAll wipes both snapshots and writes the clear-marker. The marker
// defeats the race where a stale snapshot write queued before the clear
// lands afterwards and would otherwise resurrect discarded state.
func (g *ContinuityGuard) ClearAll(ctx context.Context, sessionID string) error {
	g.client.Del(ctx, snapshotKeyPrefix+sessionID, pendingKeyPrefix+sessionID)
	marker := time.Now().Format(time.RFC3339Nano)
	if err := g.client.Set(ctx, clearedKeyPrefix+sessionID, marker, g.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write clear-marker: %w", err)
	}
	return nil
}

// LoadOnInit applies the restore precedence PENDING_HANDOFF > CLEARED >
// NORMAL exactly once per session start. A nil snapshot means start empty.
func (g *ContinuityGuard) LoadOnInit(ctx context.Context, sessionID string) (*models.CheckoutSnapshot, error) {
	// Pending hand-off snapshot wins and is single use.
	if data, err := g.client.Get(ctx, pendingKeyPrefix+sessionID).Result(); err == nil {
		g.client.Del(ctx, pendingKeyPrefix+sessionID)
		if snap := g.decode(sessionID, data); snap != nil {
			return snap, nil
		}
	} else if err != redis.Nil {
		return nil, fmt.Errorf("failed to read handoff snapshot: %w", err)
	}

	// A clear-marker means a prior session completed or abandoned:
	// consume it, drop whatever snapshot survived, start empty.
	if _, err := g.client.Get(ctx, clearedKeyPrefix+sessionID).Result(); err == nil {
		g.client.Del(ctx, snapshotKeyPrefix+sessionID, pendingKeyPrefix+sessionID, clearedKeyPrefix+sessionID)
		return nil, nil
	} else if err != redis.Nil {
		return nil, fmt.Errorf("failed to read clear-marker: %w", err)
	}

	if data, err := g.client.Get(ctx, snapshotKeyPrefix+sessionID).Result(); err == nil {
		return g.decode(sessionID, data), nil
	} else if err != redis.Nil {
		return nil, fmt.Errorf("failed to read checkout snapshot: %w", err)
	}

	return nil, nil
}

// decode degrades a malformed snapshot to an empty start instead of
// failing the session.
func (g *ContinuityGuard) decode(sessionID, data string) *models.CheckoutSnapshot {
	var snap models.CheckoutSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		g.logger.Warn("discarding malformed checkout snapshot",
			zap.String("sessionID", sessionID), zap.Error(err))
		g.client.Del(context.Background(), snapshotKeyPrefix+sessionID)
		return nil
	}
	return &snap
}
