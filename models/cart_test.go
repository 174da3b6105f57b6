package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sofa() CartLineItem {
	return CartLineItem{ServiceID: "svc-sofa", DisplayName: "Sofa Cleaning", UnitPrice: 100}
}

func TestAddLine_InsertAndIncrement(t *testing.T) {
	cart := NewCart()

	require.True(t, cart.AddLine(sofa()))
	assert.Equal(t, 1, cart.Items["svc-sofa"].Quantity)

	require.True(t, cart.AddLine(cart.Items["svc-sofa"]))
	assert.Equal(t, 2, cart.Items["svc-sofa"].Quantity)
	assert.Equal(t, 200.0, cart.Subtotal())
}

func TestAddLine_MaxQuantityCheckedBeforeIncrement(t *testing.T) {
	cart := NewCart()
	item := sofa()
	item.MaxQuantity = 2

	require.True(t, cart.AddLine(item))
	require.True(t, cart.AddLine(cart.Items["svc-sofa"]))
	// Third add would exceed the bound; it must be a silent no-op.
	assert.False(t, cart.AddLine(cart.Items["svc-sofa"]))
	assert.Equal(t, 2, cart.Items["svc-sofa"].Quantity)
}

func TestSubtotal_DiscountedPriceSupersedesUnitPrice(t *testing.T) {
	cart := NewCart()
	item := sofa()
	discounted := 80.0
	item.DiscountedUnitPrice = &discounted

	require.True(t, cart.AddLine(item))
	require.True(t, cart.AddLine(cart.Items["svc-sofa"]))
	assert.Equal(t, 160.0, cart.Subtotal())
}

func TestAddThenRemove_RestoresSubtotalExactly(t *testing.T) {
	cart := NewCart()
	require.True(t, cart.AddLine(sofa()))
	before := cart.Subtotal()

	other := CartLineItem{ServiceID: "svc-deep", DisplayName: "Deep Cleaning", UnitPrice: 49.99}
	require.True(t, cart.AddLine(other))
	cart.RemoveOneUnit("svc-deep")

	assert.Equal(t, before, cart.Subtotal())
}

func TestRemoveOneUnit_DeletesAtZero(t *testing.T) {
	cart := NewCart()
	require.True(t, cart.AddLine(sofa()))

	cart.RemoveOneUnit("svc-sofa")
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0.0, cart.Subtotal())

	// Absent item is a no-op.
	cart.RemoveOneUnit("svc-sofa")
	assert.True(t, cart.IsEmpty())
}

func TestRemove_DeletesRegardlessOfQuantity(t *testing.T) {
	cart := NewCart()
	require.True(t, cart.AddLine(sofa()))
	require.True(t, cart.AddLine(cart.Items["svc-sofa"]))
	require.Equal(t, 2, cart.Items["svc-sofa"].Quantity)

	cart.Remove("svc-sofa")
	assert.True(t, cart.IsEmpty())
}

func TestFingerprint_TracksComposition(t *testing.T) {
	cart := NewCart()
	require.True(t, cart.AddLine(sofa()))
	fp := cart.Fingerprint()

	require.True(t, cart.AddLine(cart.Items["svc-sofa"]))
	assert.NotEqual(t, fp, cart.Fingerprint())

	cart.RemoveOneUnit("svc-sofa")
	assert.Equal(t, fp, cart.Fingerprint())
}

func TestDescription(t *testing.T) {
	cart := NewCart()
	require.True(t, cart.AddLine(CartLineItem{ServiceID: "b", DisplayName: "Sofa", UnitPrice: 10}))
	require.True(t, cart.AddLine(CartLineItem{ServiceID: "a", DisplayName: "Carpet", UnitPrice: 10}))
	require.True(t, cart.AddLine(cart.Items["b"]))

	assert.Equal(t, "1x Carpet, 2x Sofa", cart.Description())
}
