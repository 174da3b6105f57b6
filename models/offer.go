package models

// DiscountType enumerates the supported offer discount strategies.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Offer is a resolved discount code. DiscountAmount is bound to the
// subtotal it was validated against; if the cart changes afterwards the
// offer is void and must be re-validated.
type Offer struct {
	Code            string       `json:"code"`
	Name            string       `json:"name,omitempty"`
	DiscountType    DiscountType `json:"discountType"`
	DiscountValue   float64      `json:"discountValue"`
	DiscountAmount  float64      `json:"discountAmount"`
	AppliedSubtotal float64      `json:"appliedSubtotal"`
	CartFingerprint string       `json:"cartFingerprint"`
}
