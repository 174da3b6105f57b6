package models

// Address is a reference to a previously persisted or newly entered
// service address. It is always chosen explicitly, never inferred.
type Address struct {
	ID        string `json:"id" bson:"id"`
	UserID    string `json:"userId,omitempty" bson:"user_id,omitempty"`
	Label     string `json:"label" bson:"label"`
	Line1     string `json:"line1" bson:"line1"`
	Area      string `json:"area" bson:"area"`
	City      string `json:"city" bson:"city"`
	Phone     string `json:"phone" bson:"phone"`
	IsDefault bool   `json:"isDefault,omitempty" bson:"is_default,omitempty"`
}

// Selection holds the address and schedule choices made in steps 2 and 3,
// independent of the cart.
type Selection struct {
	Address  *Address `json:"address"`
	Date     string   `json:"date"` // YYYY-MM-DD
	Time     string   `json:"time"` // e.g. "14:00"
	ExtraFee float64  `json:"extraFee"`
}
