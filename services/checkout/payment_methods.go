package checkout

import (
	"homely/config"
	"homely/models"
)

// Payment method codes. The set is open; new methods only need an entry
// here with their fee policy and finalization strategy.
const (
	MethodCard        = "card"
	MethodCash        = "cash"
	MethodInstallment = "installment"
)

// PaymentMethods returns the configured method registry.
func PaymentMethods() []models.PaymentMethod {
	return []models.PaymentMethod{
		{
			Code:     MethodCard,
			Label:    "Card payment",
			Fee:      0,
			Redirect: true,
		},
		{
			Code:     MethodCash,
			Label:    "Cash on delivery",
			Fee:      config.AppConfig.CashHandlingFee,
			Redirect: false,
		},
		{
			Code:         MethodInstallment,
			Label:        "Pay in installments",
			Fee:          0,
			Redirect:     true,
			Installments: config.AppConfig.InstallmentsN,
		},
	}
}

// PaymentMethodByCode looks up a method definition.
func PaymentMethodByCode(code string) (models.PaymentMethod, bool) {
	for _, m := range PaymentMethods() {
		if m.Code == code {
			return m, true
		}
	}
	return models.PaymentMethod{}, false
}
