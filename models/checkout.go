package models

import "time"

// CheckoutStep identifies the current stage of the checkout wizard.
type CheckoutStep int

const (
	StepItemSelection CheckoutStep = 1
	StepAddress       CheckoutStep = 2
	StepSchedule      CheckoutStep = 3
	StepReviewAndPay  CheckoutStep = 4
)

// SubmissionState tags the booking submission lifecycle so invalid
// combinations (e.g. submitting while still on step 1) cannot be stored.
type SubmissionState string

const (
	SubmissionIdle     SubmissionState = "idle"
	SubmissionInFlight SubmissionState = "in_flight"
	SubmissionDone     SubmissionState = "done"
	SubmissionFailed   SubmissionState = "failed"
)

// CheckoutSession holds all state of one in-progress checkout.
type CheckoutSession struct {
	SessionID     string          `json:"sessionId"`
	UserID        string          `json:"userId,omitempty"`
	Step          CheckoutStep    `json:"step"`
	Cart          Cart            `json:"cart"`
	Selection     Selection       `json:"selection"`
	Offer         *Offer          `json:"offer,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Submission    SubmissionState `json:"submission"`
	AppointmentID string          `json:"appointmentId,omitempty"`
	// Locked is set once a redirect payment session has been requested;
	// every navigation and mutation entry point rejects while locked.
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submitted reports whether this session has reached its terminal state.
func (s *CheckoutSession) Submitted() bool {
	return s.Submission == SubmissionDone
}

// CheckoutSnapshot is the durable cart+selection state the continuity
// guard writes across an authentication hand-off.
type CheckoutSnapshot struct {
	Cart      Cart      `json:"cart"`
	Selection Selection `json:"selection"`
	SavedAt   time.Time `json:"savedAt"`
}
