package yookassa

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Client defines the interface for creating payments with the YooKassa API
type Client interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error)
}

type clientImpl struct {
	rest     *resty.Client
	currency string
}

// NewClient creates a new YooKassa client authenticated with the shop credentials
func NewClient(shopID, secretKey, baseURL, currency string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	rest := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetBasicAuth(shopID, secretKey).
		SetHeader("Content-Type", "application/json")

	return &clientImpl{
		rest:     rest,
		currency: currency,
	}
}

// PaymentRequest describes a one-off redirect payment
type PaymentRequest struct {
	Amount         int
	Description    string
	ReturnURL      string
	IdempotenceKey string
	Metadata       map[string]string
}

// Payment is the subset of the provider's payment object this service reads
type Payment struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Confirmation struct {
		Type            string `json:"type"`
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation"`
}

type amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type confirmation struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url"`
}

type createPaymentBody struct {
	Amount       amount            `json:"amount"`
	Capture      bool              `json:"capture"`
	Confirmation confirmation      `json:"confirmation"`
	Description  string            `json:"description,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// FormatAmount renders a whole-unit price as the two-decimal string the API expects
func FormatAmount(value int) string {
	return decimal.NewFromInt(int64(value)).StringFixed(2)
}

func (c *clientImpl) CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	body := createPaymentBody{
		Amount:  amount{Value: FormatAmount(req.Amount), Currency: c.currency},
		Capture: true,
		Confirmation: confirmation{
			Type:      "redirect",
			ReturnURL: req.ReturnURL,
		},
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Idempotence-Key", req.IdempotenceKey).
		SetBody(body).
		Post("/payments")
	if err != nil {
		return nil, fmt.Errorf("error creating YooKassa payment: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("error from YooKassa API: status %d: %s", resp.StatusCode(), resp.String())
	}

	var payment Payment
	if err := json.Unmarshal(resp.Body(), &payment); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	if payment.Confirmation.ConfirmationURL == "" {
		return nil, fmt.Errorf("YooKassa payment %s has no confirmation url", payment.ID)
	}

	log.Printf("[YooKassa] Created payment %s (status=%s)", payment.ID, payment.Status)
	return &payment, nil
}
