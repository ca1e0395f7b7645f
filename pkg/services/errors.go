package services

import "errors"

var (
	// ErrMalformedBody is returned when a request body is not parseable JSON
	ErrMalformedBody = errors.New("invalid JSON")
	// ErrNotionKeyMissing is returned when Notion is required but has no API key
	ErrNotionKeyMissing = errors.New("NOTION_API_KEY not set")
	// ErrWebhookSecretMissing is returned when the Stripe webhook secret is not configured
	ErrWebhookSecretMissing = errors.New("STRIPE_WEBHOOK_SECRET not set")
	// ErrSignature is returned when a webhook signature does not match its body
	ErrSignature = errors.New("webhook signature verification failed")
)

var errPanic = errors.New("sink panicked")
