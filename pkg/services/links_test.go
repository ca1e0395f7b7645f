package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lead-capture/pkg/config"
	"lead-capture/pkg/models"
)

func TestResolvePaymentLink(t *testing.T) {
	pricing := config.DefaultPricing()

	assert.Equal(t, "https://buy.stripe.com/8x25kD8TY8hN4Vi27E3F604",
		ResolvePaymentLink(pricing, models.PaymentMethodStripe, 24990))
	assert.Equal(t, "https://yookassa.ru/my/i/aY41DlTAd6Eb/l",
		ResolvePaymentLink(pricing, models.PaymentMethodYooKassa, 9990))
}

func TestResolvePaymentLinkFallsBackToYooKassa(t *testing.T) {
	pricing := config.DefaultPricing()
	delete(pricing.Links[models.PaymentMethodStripe], 24990)

	assert.Equal(t, "https://yookassa.ru/my/i/aY41dCCrZdsy/l",
		ResolvePaymentLink(pricing, models.PaymentMethodStripe, 24990))
}

func TestResolvePaymentLinkNeverEmpty(t *testing.T) {
	pricing := config.DefaultPricing()

	assert.Equal(t, "https://yookassa.ru/my/i/aY41DlTAd6Eb/l",
		ResolvePaymentLink(pricing, models.PaymentMethodStripe, 777))
}
