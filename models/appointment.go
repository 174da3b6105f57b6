package models

import "time"

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// AppointmentRequest is the fully materialized order, submitted exactly
// once per successful checkout.
type AppointmentRequest struct {
	UserID             string         `json:"userId" bson:"user_id"`
	ServiceDescription string         `json:"serviceDescription" bson:"service_description"`
	Date               string         `json:"date" bson:"date"`
	Time               string         `json:"time" bson:"time"`
	Address            Address        `json:"address" bson:"address"`
	Breakdown          PriceBreakdown `json:"breakdown" bson:"breakdown"`
	PaymentMethod      string         `json:"paymentMethod" bson:"payment_method"`
	Notes              string         `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Appointment is the committed booking record.
type Appointment struct {
	ID        string             `json:"appointment_id" bson:"id"`
	Status    string             `json:"status" bson:"status"`
	Request   AppointmentRequest `json:"request" bson:"request"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
