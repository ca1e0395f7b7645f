package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lead-capture/pkg/config"
	"lead-capture/pkg/models"
)

const (
	maxNameLength = 2000
	emptyName     = "—"
)

// Raw status values the landing page sends once a lead has paid
var paidMarkers = []string{"оплачено", "paid"}

// DecodeSubmission parses a lead submission body. The body may be a JSON
// object or a JSON string holding the object. Valid JSON of any other kind
// yields an empty submission, which normalizes to defaults.
func DecodeSubmission(raw []byte) (models.LeadSubmission, error) {
	var sub models.LeadSubmission

	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return sub, ErrMalformedBody
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return sub, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return DecodeSubmission([]byte(inner))
	}

	if raw[0] != '{' {
		return sub, nil
	}

	if err := json.Unmarshal(raw, &sub); err != nil {
		return sub, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return sub, nil
}

// Normalize coerces a submission into a lead. It never fails: unknown amounts
// collapse to the default price and unknown methods to YooKassa.
func Normalize(sub models.LeadSubmission, pricing config.Pricing, now time.Time) models.NormalizedLead {
	now = now.UTC()

	name := strings.TrimSpace(string(sub.Name))
	if name == "" {
		name = emptyName
	}
	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}

	amount := int(sub.Amount)
	if !pricing.Allows(amount) {
		amount = pricing.DefaultAmount
	}

	method := models.PaymentMethodYooKassa
	if strings.TrimSpace(string(sub.PaymentMethod)) == string(models.PaymentMethodStripe) {
		method = models.PaymentMethodStripe
	}

	return models.NormalizedLead{
		Name:          name,
		Email:         optional(string(sub.Email)),
		Phone:         optional(string(sub.Phone)),
		Amount:        amount,
		PaymentMethod: method,
		Status:        statusLabel(string(sub.Status)),
		Date:          now.Format(time.DateOnly),
		Time:          now.Format(time.TimeOnly),
		SubmittedAt:   now,
	}
}

func statusLabel(raw string) models.StatusLabel {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, marker := range paidMarkers {
		if raw == marker {
			return models.StatusPaid
		}
	}
	return models.StatusUnpaid
}

func optional(raw string) *string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	return &v
}
