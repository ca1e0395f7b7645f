package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"lead-capture/pkg/config"
	"lead-capture/pkg/email"
	"lead-capture/pkg/models"
	"lead-capture/pkg/utils"
)

// PaymentNotificationService turns provider webhooks into confirmation emails
type PaymentNotificationService interface {
	ParseStripeEvent(raw []byte, signatureHeader string) (models.PaymentEvent, error)
	ParseYooKassaEvent(raw []byte) (models.PaymentEvent, error)
	NotifyPaymentSucceeded(ctx context.Context, event models.PaymentEvent) models.DeliveryResult
}

type paymentNotificationServiceImpl struct {
	sender email.Sender
	stripe config.StripeConfig
	email  config.EmailConfig
}

// NewPaymentNotificationService creates a new notification service. sender
// may be nil, in which case confirmations are skipped and logged.
func NewPaymentNotificationService(sender email.Sender, cfg *config.Config) PaymentNotificationService {
	return &paymentNotificationServiceImpl{
		sender: sender,
		stripe: cfg.Stripe,
		email:  cfg.Email,
	}
}

// ParseStripeEvent verifies the signature over the untouched body before
// decoding anything from it
func (s *paymentNotificationServiceImpl) ParseStripeEvent(raw []byte, signatureHeader string) (models.PaymentEvent, error) {
	if s.stripe.WebhookSecret == "" {
		return models.PaymentEvent{}, ErrWebhookSecretMissing
	}
	if signatureHeader == "" {
		return models.PaymentEvent{}, fmt.Errorf("%w: missing Stripe-Signature header", ErrSignature)
	}
	if err := webhook.ValidatePayload(raw, signatureHeader, s.stripe.WebhookSecret); err != nil {
		return models.PaymentEvent{}, fmt.Errorf("%w: %v", ErrSignature, err)
	}

	var event stripe.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return models.PaymentEvent{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	out := models.PaymentEvent{
		Provider:  models.ProviderStripe,
		Type:      string(event.Type),
		EventName: string(event.Type),
	}
	if out.Type != models.StripeCheckoutCompleted || event.Data == nil {
		return out, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return models.PaymentEvent{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	out.Status = string(session.PaymentStatus)
	out.CustomerEmail = session.CustomerEmail
	if session.CustomerDetails != nil {
		if out.CustomerEmail == "" {
			out.CustomerEmail = session.CustomerDetails.Email
		}
		out.CustomerName = session.CustomerDetails.Name
	}
	return out, nil
}

// yooKassaNotification is the body YooKassa posts for payment events
type yooKassaNotification struct {
	Type   string `json:"type"`
	Event  string `json:"event"`
	Object *struct {
		ID       string                       `json:"id"`
		Status   string                       `json:"status"`
		Metadata map[string]models.FlexString `json:"metadata"`
	} `json:"object"`
}

func (s *paymentNotificationServiceImpl) ParseYooKassaEvent(raw []byte) (models.PaymentEvent, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return models.PaymentEvent{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		raw = []byte(inner)
	}

	var body yooKassaNotification
	if err := json.Unmarshal(raw, &body); err != nil {
		return models.PaymentEvent{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	out := models.PaymentEvent{
		Provider:  models.ProviderYooKassa,
		Type:      body.Type,
		EventName: body.Event,
	}
	if body.Object != nil {
		out.Status = body.Object.Status
		out.CustomerEmail = strings.TrimSpace(string(body.Object.Metadata["customer_email"]))
		out.CustomerName = string(body.Object.Metadata["customer_name"])
	}
	return out, nil
}

// NotifyPaymentSucceeded sends at most one confirmation email for an actionable
// event. Nothing here is surfaced to the provider: a webhook is always acknowledged.
func (s *paymentNotificationServiceImpl) NotifyPaymentSucceeded(ctx context.Context, event models.PaymentEvent) models.DeliveryResult {
	if !event.Actionable() {
		return models.DeliveryResult{Reason: "event ignored"}
	}

	if event.CustomerEmail == "" {
		log.Printf("[Webhook] %s: no customer email in event, skipping confirmation", event.Provider)
		return models.DeliveryResult{Reason: "no customer email"}
	}

	if s.sender == nil {
		log.Printf("[Webhook] %s: no email transport configured, cannot send confirmation", event.Provider)
		return models.DeliveryResult{Reason: "no email transport"}
	}

	body := email.RenderConfirmationEmail(event.CustomerName, s.email.TelegramChatLink)
	if err := s.sender.Send(ctx, event.CustomerEmail, email.ConfirmationSubject, body); err != nil {
		log.Printf("[Webhook] %s: confirmation email failed for %s: %v",
			event.Provider, utils.HashString(event.CustomerEmail), err)
		return models.DeliveryResult{Reason: "send failed", Err: err}
	}

	log.Printf("[Webhook] %s: confirmation sent to %s", event.Provider, utils.HashString(event.CustomerEmail))
	return models.DeliveryResult{Sent: true}
}
