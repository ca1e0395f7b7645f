package services

import (
	"lead-capture/pkg/config"
	"lead-capture/pkg/models"
)

// ResolvePaymentLink returns the static checkout URL for a method and amount.
// A missing pair falls back to the YooKassa link for the amount, then to the
// YooKassa link for the default price.
func ResolvePaymentLink(pricing config.Pricing, method models.PaymentMethod, amount int) string {
	if url := pricing.Links[method][amount]; url != "" {
		return url
	}
	if url := pricing.Links[models.PaymentMethodYooKassa][amount]; url != "" {
		return url
	}
	return pricing.Links[models.PaymentMethodYooKassa][pricing.DefaultAmount]
}
