package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// CartLineItem is one selected service in the cart.
// DiscountedUnitPrice, when set, supersedes UnitPrice in every price
// computation. MaxQuantity of 0 means unbounded.
type CartLineItem struct {
	ServiceID           string   `json:"serviceId" bson:"service_id"`
	DisplayName         string   `json:"displayName" bson:"display_name"`
	UnitPrice           float64  `json:"unitPrice" bson:"unit_price"`
	DiscountedUnitPrice *float64 `json:"discountedUnitPrice,omitempty" bson:"discounted_unit_price,omitempty"`
	Quantity            int      `json:"quantity" bson:"quantity"`
	RoomTypeSlug        string   `json:"roomTypeSlug" bson:"room_type_slug"`
	PropertyTypeSlug    string   `json:"propertyTypeSlug" bson:"property_type_slug"`
	CategorySlug        string   `json:"categorySlug" bson:"category_slug"`
	MaxQuantity         int      `json:"maxQuantity,omitempty" bson:"max_quantity,omitempty"`
}

// EffectiveUnitPrice returns the price a unit of this item actually costs.
func (li CartLineItem) EffectiveUnitPrice() float64 {
	if li.DiscountedUnitPrice != nil {
		return *li.DiscountedUnitPrice
	}
	return li.UnitPrice
}

// LineTotal is the payable amount for this line.
func (li CartLineItem) LineTotal() float64 {
	return li.EffectiveUnitPrice() * float64(li.Quantity)
}

// Cart maps serviceId to its line item. Insertion order is irrelevant for
// correctness; display ordering is a presentation concern.
type Cart struct {
	Items map[string]CartLineItem `json:"items"`
}

// NewCart returns an empty cart.
func NewCart() Cart {
	return Cart{Items: make(map[string]CartLineItem)}
}

// IsEmpty reports whether the cart holds no items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddLine inserts the item at quantity 1, or increments the existing line.
// Returns false without mutating when MaxQuantity would be exceeded; the
// bound is checked before incrementing, never after.
func (c *Cart) AddLine(item CartLineItem) bool {
	if c.Items == nil {
		c.Items = make(map[string]CartLineItem)
	}
	if existing, ok := c.Items[item.ServiceID]; ok {
		if existing.MaxQuantity > 0 && existing.Quantity+1 > existing.MaxQuantity {
			return false
		}
		existing.Quantity++
		c.Items[item.ServiceID] = existing
		return true
	}
	if item.MaxQuantity > 0 && item.MaxQuantity < 1 {
		return false
	}
	item.Quantity = 1
	c.Items[item.ServiceID] = item
	return true
}

// RemoveOneUnit decrements the line, deleting it when quantity reaches 0.
// No-op when the item is absent.
func (c *Cart) RemoveOneUnit(serviceID string) {
	item, ok := c.Items[serviceID]
	if !ok {
		return
	}
	item.Quantity--
	if item.Quantity < 1 {
		delete(c.Items, serviceID)
		return
	}
	c.Items[serviceID] = item
}

// Remove deletes the line entirely regardless of quantity.
func (c *Cart) Remove(serviceID string) {
	delete(c.Items, serviceID)
}

// Subtotal sums effective unit price times quantity over all lines.
// Deterministic and side-effect free.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ServiceIDs returns the cart's service ids in sorted order.
func (c Cart) ServiceIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for id := range c.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Fingerprint is a stable digest of the cart composition (items,
// quantities and effective prices). An applied offer is void once the
// fingerprint it was bound to no longer matches.
func (c Cart) Fingerprint() string {
	var b strings.Builder
	for _, id := range c.ServiceIDs() {
		item := c.Items[id]
		fmt.Fprintf(&b, "%s:%d:%.2f;", id, item.Quantity, item.EffectiveUnitPrice())
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}

// Description renders the cart as a short human-readable order summary.
func (c Cart) Description() string {
	var b strings.Builder
	for i, id := range c.ServiceIDs() {
		item := c.Items[id]
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%dx %s", item.Quantity, item.DisplayName)
	}
	return b.String()
}
