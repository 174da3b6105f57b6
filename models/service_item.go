package models

// ServiceItem is a priced, quantifiable catalog entry. The checkout engine
// only consumes these; how catalog data is produced is out of scope.
type ServiceItem struct {
	ServiceID           string   `json:"serviceId" bson:"service_id"`
	DisplayName         string   `json:"displayName" bson:"display_name"`
	UnitPrice           float64  `json:"unitPrice" bson:"unit_price"`
	DiscountedUnitPrice *float64 `json:"discountedUnitPrice,omitempty" bson:"discounted_unit_price,omitempty"`
	RoomTypeSlug        string   `json:"roomTypeSlug" bson:"room_type_slug"`
	PropertyTypeSlug    string   `json:"propertyTypeSlug" bson:"property_type_slug"`
	CategorySlug        string   `json:"categorySlug" bson:"category_slug"`
	MaxQuantity         int      `json:"maxQuantity,omitempty" bson:"max_quantity,omitempty"`
	Active              bool     `json:"active" bson:"active"`
}

// LineItem converts a catalog entry into a cart line at quantity 1.
func (s ServiceItem) LineItem() CartLineItem {
	return CartLineItem{
		ServiceID:           s.ServiceID,
		DisplayName:         s.DisplayName,
		UnitPrice:           s.UnitPrice,
		DiscountedUnitPrice: s.DiscountedUnitPrice,
		Quantity:            1,
		RoomTypeSlug:        s.RoomTypeSlug,
		PropertyTypeSlug:    s.PropertyTypeSlug,
		CategorySlug:        s.CategorySlug,
		MaxQuantity:         s.MaxQuantity,
	}
}

// AvailableSlot is one selectable date with its open time slots, as
// supplied by the availability collaborator. The checkout engine treats
// these as opaque selectable values.
type AvailableSlot struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}
