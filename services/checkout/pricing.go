package checkout

import (
	"math"

	"homely/models"
)

// PricingInput carries the amounts the pricing engine works from.
type PricingInput struct {
	Subtotal       float64
	DiscountAmount float64
	ExtraFee       float64
	PaymentFee     float64
	VATRate        float64
}

// ComputeBreakdown produces the full payable breakdown. The discount is
// clamped to the subtotal so the final amount can never go negative.
func ComputeBreakdown(in PricingInput) models.PriceBreakdown {
	discount := in.DiscountAmount
	if discount > in.Subtotal {
		discount = in.Subtotal
	}
	if discount < 0 {
		discount = 0
	}

	finalAmount := in.Subtotal - discount
	if finalAmount < 0 {
		finalAmount = 0
	}
	payableBeforeVAT := finalAmount + in.ExtraFee + in.PaymentFee
	vat := payableBeforeVAT * in.VATRate

	return models.PriceBreakdown{
		Subtotal:       roundCents(in.Subtotal),
		DiscountAmount: roundCents(discount),
		FinalAmount:    roundCents(finalAmount),
		ExtraFee:       roundCents(in.ExtraFee),
		PaymentFee:     roundCents(in.PaymentFee),
		VAT:            roundCents(vat),
		TotalToPay:     roundCents(payableBeforeVAT + vat),
	}
}

// ComputeDiscountAmount resolves a discount definition against a subtotal.
// Fixed discounts are capped at the subtotal.
func ComputeDiscountAmount(dt models.DiscountType, value, subtotal float64) float64 {
	var amount float64
	switch dt {
	case models.DiscountPercentage:
		amount = subtotal * value / 100
	case models.DiscountFixed:
		amount = value
	}
	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return roundCents(amount)
}

// MonthlyInstallment is the purely derived per-month display amount.
// Never persisted as authoritative.
func MonthlyInstallment(totalToPay float64, installments int) float64 {
	if installments <= 0 {
		return 0
	}
	return roundCents(totalToPay / float64(installments))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
