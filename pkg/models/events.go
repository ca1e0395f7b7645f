package models

const (
	ProviderStripe   = "stripe"
	ProviderYooKassa = "yookassa"

	StripeCheckoutCompleted = "checkout.session.completed"
	YooKassaNotification    = "notification"
	YooKassaPaymentSuccess  = "payment.succeeded"
	YooKassaStatusSucceeded = "succeeded"
)

// PaymentEvent is a provider notification reduced to what the notifier needs
type PaymentEvent struct {
	Provider      string
	Type          string
	EventName     string
	Status        string
	CustomerEmail string
	CustomerName  string
}

// Actionable reports whether the event confirms a successful payment
func (e PaymentEvent) Actionable() bool {
	switch e.Provider {
	case ProviderStripe:
		return e.Type == StripeCheckoutCompleted
	case ProviderYooKassa:
		return e.Type == YooKassaNotification &&
			e.EventName == YooKassaPaymentSuccess &&
			e.Status == YooKassaStatusSucceeded
	}
	return false
}

// SinkResult is the outcome of one best-effort write to a record store
type SinkResult struct {
	Sink     string
	OK       bool
	Shape    string
	Attempts int
	Err      error
}

// DeliveryResult is the outcome of one confirmation email attempt
type DeliveryResult struct {
	Sent   bool
	Reason string
	Err    error
}
