package checkout

import "fmt"

// ValidationError blocks progression locally; no network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// SubmissionError means appointment creation failed. The cart is
// deliberately not cleared so the user can retry.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submissionError: %s", e.Message)
}

func NewSubmissionError(msg string) error {
	return &SubmissionError{Message: msg}
}

// PaymentGatewayError means a payment session could not be created after a
// pending appointment was already committed. The appointment is left for
// the reconciliation sweep.
type PaymentGatewayError struct {
	AppointmentID string
	Message       string
}

func (e *PaymentGatewayError) Error() string {
	return fmt.Sprintf("paymentGatewayError: %s (appointment %s)", e.Message, e.AppointmentID)
}

// ErrAuthRequired signals that forward progress was interrupted for
// authentication; the session state has been snapshotted for the hand-off.
var ErrAuthRequired = fmt.Errorf("authentication required to continue checkout")

// ErrSessionLocked rejects any action once a redirect payment session has
// been requested.
var ErrSessionLocked = fmt.Errorf("checkout session is locked")

// ErrSubmissionInProgress rejects a second submit while one is pending.
var ErrSubmissionInProgress = fmt.Errorf("submission already in progress")

// ErrAlreadySubmitted rejects actions on a completed session.
var ErrAlreadySubmitted = fmt.Errorf("booking already submitted")
