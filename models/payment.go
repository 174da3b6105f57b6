package models

// PaymentMethod describes how a booking is paid for. Fee is a flat addend
// on the payable amount. Redirect methods hand control to an external
// gateway before confirmation; direct methods confirm immediately.
type PaymentMethod struct {
	Code         string  `json:"code"`
	Label        string  `json:"label"`
	Fee          float64 `json:"fee"`
	Redirect     bool    `json:"redirect"`
	Installments int     `json:"installments,omitempty"`
}

// PaymentSessionRequest is the payload sent to the external gateway when a
// redirect method is chosen.
type PaymentSessionRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Description   string  `json:"description"`
	OrderID       string  `json:"orderId"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	ReturnURL     string  `json:"returnUrl"`
	CancelURL     string  `json:"cancelUrl"`
}

// PriceBreakdown is the full fee breakdown shown on review and stamped
// onto the appointment request.
type PriceBreakdown struct {
	Subtotal           float64 `json:"subtotal"`
	DiscountAmount     float64 `json:"discountAmount"`
	FinalAmount        float64 `json:"finalAmount"`
	ExtraFee           float64 `json:"extraFee"`
	PaymentFee         float64 `json:"paymentFee"`
	VAT                float64 `json:"vat"`
	TotalToPay         float64 `json:"totalToPay"`
	Currency           string  `json:"currency"`
	MonthlyInstallment float64 `json:"monthlyInstallment,omitempty"`
}
