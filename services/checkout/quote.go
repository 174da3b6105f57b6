package checkout

import (
	"context"

	"homely/config"
	"homely/models"
)

// Quote computes the current payable breakdown for review.
func (s *DefaultCheckoutService) Quote(ctx context.Context, sessionID string) (*models.PriceBreakdown, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildQuote(session), nil
}

// buildQuote is the single place the pricing engine is fed from session
// state: cart subtotal, bound offer discount, schedule extra fee and the
// chosen method's flat fee.
func buildQuote(session *models.CheckoutSession) *models.PriceBreakdown {
	var discount float64
	if session.Offer != nil {
		discount = session.Offer.DiscountAmount
	}

	var paymentFee float64
	var installments int
	if method, ok := PaymentMethodByCode(session.PaymentMethod); ok {
		paymentFee = method.Fee
		installments = method.Installments
	}

	breakdown := ComputeBreakdown(PricingInput{
		Subtotal:       session.Cart.Subtotal(),
		DiscountAmount: discount,
		ExtraFee:       session.Selection.ExtraFee,
		PaymentFee:     paymentFee,
		VATRate:        config.AppConfig.VATRate,
	})
	breakdown.Currency = config.AppConfig.Currency
	if installments > 0 {
		breakdown.MonthlyInstallment = MonthlyInstallment(breakdown.TotalToPay, installments)
	}
	return &breakdown
}
