package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-capture/pkg/config"
	"lead-capture/pkg/models"
)

var fixedNow = time.Date(2026, 10, 19, 14, 5, 9, 0, time.UTC)

func normalizeBody(t *testing.T, body string) models.NormalizedLead {
	t.Helper()
	sub, err := DecodeSubmission([]byte(body))
	require.NoError(t, err)
	return Normalize(sub, config.DefaultPricing(), fixedNow)
}

func TestDecodeSubmissionMalformed(t *testing.T) {
	for _, body := range []string{``, `{`, `not json`, `{"name":}`, `"{broken"`} {
		_, err := DecodeSubmission([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedBody, body)
	}
}

func TestDecodeSubmissionDoubleEncoded(t *testing.T) {
	sub, err := DecodeSubmission([]byte(`"{\"name\":\"Анна\",\"amount\":24990}"`))
	require.NoError(t, err)
	assert.Equal(t, "Анна", string(sub.Name))
	assert.Equal(t, 24990, int(sub.Amount))
}

func TestDecodeSubmissionNonObjectJSON(t *testing.T) {
	for _, body := range []string{`[1,2]`, `42`, `null`, `true`} {
		sub, err := DecodeSubmission([]byte(body))
		require.NoError(t, err, body)
		assert.Equal(t, models.LeadSubmission{}, sub)
	}
}

func TestNormalizeAmountAlwaysInPriceTable(t *testing.T) {
	pricing := config.DefaultPricing()
	for _, body := range []string{
		`{}`, `{"amount":1}`, `{"amount":-24990}`, `{"amount":"abc"}`, `{"amount":9990}`,
		`{"amount":"24990"}`, `{"amount":24990.99}`, `{"amount":[24990]}`, `{"amount":1e9}`,
	} {
		lead := normalizeBody(t, body)
		assert.True(t, pricing.Allows(lead.Amount), body)
	}

	assert.Equal(t, 24990, normalizeBody(t, `{"amount":"24990"}`).Amount)
	assert.Equal(t, 9990, normalizeBody(t, `{"amount":12345}`).Amount)
}

func TestNormalizePaymentMethodIsOneOfTwo(t *testing.T) {
	tests := map[string]models.PaymentMethod{
		`{"paymentMethod":"stripe"}`:   models.PaymentMethodStripe,
		`{"paymentMethod":" stripe "}`: models.PaymentMethodStripe,
		`{"paymentMethod":"yookassa"}`: models.PaymentMethodYooKassa,
		`{"paymentMethod":"paypal"}`:   models.PaymentMethodYooKassa,
		`{"paymentMethod":"STRIPE"}`:   models.PaymentMethodYooKassa,
		`{"paymentMethod":7}`:          models.PaymentMethodYooKassa,
		`{}`:                           models.PaymentMethodYooKassa,
	}
	for body, want := range tests {
		assert.Equal(t, want, normalizeBody(t, body).PaymentMethod, body)
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, models.StatusPaid, normalizeBody(t, `{"status":"оплачено"}`).Status)
	assert.Equal(t, models.StatusPaid, normalizeBody(t, `{"status":"Оплачено"}`).Status)
	assert.Equal(t, models.StatusPaid, normalizeBody(t, `{"status":"paid"}`).Status)
	assert.Equal(t, models.StatusUnpaid, normalizeBody(t, `{"status":"не оплачено"}`).Status)
	assert.Equal(t, models.StatusUnpaid, normalizeBody(t, `{}`).Status)
}

func TestNormalizeNameAndContacts(t *testing.T) {
	lead := normalizeBody(t, `{"name":"  Анна  ","email":" anna@example.com ","phone":"   "}`)
	assert.Equal(t, "Анна", lead.Name)
	require.NotNil(t, lead.Email)
	assert.Equal(t, "anna@example.com", *lead.Email)
	assert.Nil(t, lead.Phone)

	empty := normalizeBody(t, `{"name":"   "}`)
	assert.Equal(t, "—", empty.Name)
	assert.Nil(t, empty.Email)

	long := normalizeBody(t, `{"name":"`+strings.Repeat("я", 2500)+`"}`)
	assert.Equal(t, 2000, len([]rune(long.Name)))
}

func TestNormalizeDateAndTime(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	sub, err := DecodeSubmission([]byte(`{}`))
	require.NoError(t, err)

	lead := Normalize(sub, config.DefaultPricing(), time.Date(2026, 10, 20, 1, 30, 0, 0, moscow))

	assert.Equal(t, "2026-10-19", lead.Date)
	assert.Equal(t, "22:30:00", lead.Time)
}
