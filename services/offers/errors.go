package offers

import "fmt"

// Reason classifies why an offer code could not be applied.
type Reason string

const (
	ReasonInvalidCode   Reason = "invalidCode"
	ReasonExpired       Reason = "expired"
	ReasonNotApplicable Reason = "notApplicable"
	ReasonNetwork       Reason = "networkError"
	// ReasonStale marks a validation result computed against a subtotal
	// that no longer matches the cart.
	ReasonStale Reason = "stale"
)

// OfferError is a typed failure from offer validation. A previously
// applied offer is never disturbed by one of these.
type OfferError struct {
	Reason  Reason
	Message string
}

func (e *OfferError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func NewOfferError(reason Reason, msg string) error {
	return &OfferError{Reason: reason, Message: msg}
}
