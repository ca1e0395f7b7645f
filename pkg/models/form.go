package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// PaymentMethod is the checkout provider chosen on the landing page
type PaymentMethod string

const (
	PaymentMethodStripe   PaymentMethod = "stripe"
	PaymentMethodYooKassa PaymentMethod = "yookassa"
)

// Label is the human readable provider name written to record stores
func (m PaymentMethod) Label() string {
	if m == PaymentMethodStripe {
		return "Stripe (иностранная карта)"
	}
	return "ЮKassa (карта РФ)"
}

// StatusLabel is the payment state recorded for a lead
type StatusLabel string

const (
	StatusPaid   StatusLabel = "Paid"
	StatusUnpaid StatusLabel = "Unpaid"
)

// Represents the data structure coming from the landing page form.
// Every field is attacker controlled and decoded leniently.
type LeadSubmission struct {
	Name          FlexString `json:"name"`
	Email         FlexString `json:"email"`
	Phone         FlexString `json:"phone"`
	Amount        FlexInt    `json:"amount"`
	PaymentMethod FlexString `json:"paymentMethod"`
	Status        FlexString `json:"status"`
}

// NormalizedLead is the sanitized lead forwarded to payment providers and sinks
type NormalizedLead struct {
	Name          string
	Email         *string
	Phone         *string
	Amount        int
	PaymentMethod PaymentMethod
	Status        StatusLabel
	Date          string
	Time          string
	SubmittedAt   time.Time
}

// EmailOrEmpty returns the email address or "" when it was not provided
func (l NormalizedLead) EmailOrEmpty() string {
	if l.Email == nil {
		return ""
	}
	return *l.Email
}

// PhoneOrEmpty returns the phone number or "" when it was not provided
func (l NormalizedLead) PhoneOrEmpty() string {
	if l.Phone == nil {
		return ""
	}
	return *l.Phone
}

// RedirectResult is the only payload returned to the landing page
type RedirectResult struct {
	RedirectURL string `json:"redirectUrl"`
}

// FlexString accepts any JSON scalar. Numbers and booleans keep their literal
// text, while null, objects and arrays decode to "".
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = ""
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	case '{', '[', 'n':
		*s = ""
	default:
		*s = FlexString(data)
	}
	return nil
}

// FlexInt accepts a JSON number or a numeric string and keeps the leading
// integer part. Anything else decodes to 0.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	*n = FlexInt(leadingInt(raw))
	return nil
}

func leadingInt(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) {
		ch := raw[end]
		if ch >= '0' && ch <= '9' || end == 0 && (ch == '-' || ch == '+') {
			end++
			continue
		}
		break
	}
	v, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return v
}
