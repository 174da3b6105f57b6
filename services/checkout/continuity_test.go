package checkout

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"homely/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupGuard(t *testing.T) (*ContinuityGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewContinuityGuard(client, time.Hour, zap.NewNop()), mr
}

func snapshotWithItem(serviceID string) models.CheckoutSnapshot {
	cart := models.NewCart()
	cart.AddLine(models.CartLineItem{ServiceID: serviceID, DisplayName: serviceID, UnitPrice: 10})
	return models.CheckoutSnapshot{Cart: cart}
}

func TestLoadOnInit_EmptyStore(t *testing.T) {
	guard, _ := setupGuard(t)

	snap, err := guard.LoadOnInit(context.Background(), "sid")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSaveThenLoad_RestoresNormalSnapshot(t *testing.T) {
	guard, _ := setupGuard(t)
	ctx := context.Background()

	require.NoError(t, guard.Save(ctx, "sid", snapshotWithItem("svc-a")))

	snap, err := guard.LoadOnInit(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Contains(t, snap.Cart.Items, "svc-a")
}

func TestLoadOnInit_PendingHandoffWinsAndIsSingleUse(t *testing.T) {
	guard, _ := setupGuard(t)
	ctx := context.Background()

	require.NoError(t, guard.Save(ctx, "sid", snapshotWithItem("svc-old")))
	require.NoError(t, guard.SaveForHandoff(ctx, "sid", snapshotWithItem("svc-handoff")))

	snap, err := guard.LoadOnInit(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Contains(t, snap.Cart.Items, "svc-handoff")

	// Pending snapshot is consumed; the normal one takes over next time.
	snap, err = guard.LoadOnInit(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Contains(t, snap.Cart.Items, "svc-old")
}

func TestClearAll_SubsequentLoadStartsEmpty(t *testing.T) {
	guard, _ := setupGuard(t)
	ctx := context.Background()

	require.NoError(t, guard.Save(ctx, "sid", snapshotWithItem("svc-a")))
	require.NoError(t, guard.ClearAll(ctx, "sid"))

	snap, err := guard.LoadOnInit(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestClearMarker_DefeatsStaleSnapshotWrite(t *testing.T) {
	guard, mr := setupGuard(t)
	ctx := context.Background()

	require.NoError(t, guard.Save(ctx, "sid", snapshotWithItem("svc-a")))
	require.NoError(t, guard.ClearAll(ctx, "sid"))

	// A queued snapshot write that was issued before the clear lands
	// afterwards, directly on the storage key.
	stale, err := json.Marshal(snapshotWithItem("svc-stale"))
	require.NoError(t, err)
	require.NoError(t, mr.Set(snapshotKeyPrefix+"sid", string(stale)))

	snap, err := guard.LoadOnInit(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, snap, "cleared state must not be resurrected")

	// The marker is consumed along with the stale snapshot.
	assert.False(t, mr.Exists(snapshotKeyPrefix+"sid"))
	assert.False(t, mr.Exists(clearedKeyPrefix+"sid"))
}

func TestSave_RemovesClearMarker(t *testing.T) {
	guard, mr := setupGuard(t)
	ctx := context.Background()

	require.NoError(t, guard.ClearAll(ctx, "sid"))
	require.True(t, mr.Exists(clearedKeyPrefix+"sid"))

	// A fresh save means the user intends the cart to persist again.
	require.NoError(t, guard.Save(ctx, "sid", snapshotWithItem("svc-new")))
	assert.False(t, mr.Exists(clearedKeyPrefix+"sid"))

	snap, err := guard.LoadOnInit(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Contains(t, snap.Cart.Items, "svc-new")
}

func TestLoadOnInit_MalformedSnapshotDegradesToEmpty(t *testing.T) {
	guard, mr := setupGuard(t)

	require.NoError(t, mr.Set(snapshotKeyPrefix+"sid", "{not json"))

	snap, err := guard.LoadOnInit(context.Background(), "sid")
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.False(t, mr.Exists(snapshotKeyPrefix+"sid"))
}
