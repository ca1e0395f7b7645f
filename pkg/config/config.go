package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"lead-capture/pkg/models"
)

const (
	defaultNotionDatabaseID = "30c59203544880e19b8af372b6c731d4"
	defaultFromEmail        = "onboarding@resend.dev"
	defaultOutboundTimeout  = 8 * time.Second
)

// Config holds all application configuration values.
// It is loaded once at start-up and never mutated afterwards.
type Config struct {
	Server    ServerConfig
	Notion    NotionConfig
	Airtable  AirtableConfig
	Sheets    SheetsConfig
	FormRelay FormRelayConfig
	YooKassa  YooKassaConfig
	Stripe    StripeConfig
	Email     EmailConfig
	Telemetry TelemetryConfig
	Pricing   Pricing
}

type ServerConfig struct {
	Port            string
	GinMode         string
	OutboundTimeout time.Duration
	// SinksDetached lets persistence finish after the response is written.
	// Only safe on a long-running server, never on a function platform.
	SinksDetached bool
}

type NotionConfig struct {
	APIKey     string
	DatabaseID string
	BaseURL    string
	// Required turns a missing API key into a 500 on lead submission
	Required bool
}

func (c NotionConfig) Enabled() bool { return c.APIKey != "" }

type AirtableConfig struct {
	APIKey  string
	BaseID  string
	Table   string
	BaseURL string
}

func (c AirtableConfig) Enabled() bool {
	return c.APIKey != "" && c.BaseID != "" && c.Table != ""
}

type SheetsConfig struct {
	WebhookURL string
}

func (c SheetsConfig) Enabled() bool { return c.WebhookURL != "" }

type FormRelayConfig struct {
	URL string
}

func (c FormRelayConfig) Enabled() bool { return c.URL != "" }

type YooKassaConfig struct {
	ShopID    string
	SecretKey string
	SiteURL   string
	BaseURL   string
	Currency  string
}

// Enabled reports whether dynamic payment sessions can be created
func (c YooKassaConfig) Enabled() bool {
	return c.ShopID != "" && c.SecretKey != "" && c.SiteURL != ""
}

// ReturnURL is where the provider sends the customer after checkout
func (c YooKassaConfig) ReturnURL() string {
	return strings.TrimRight(c.SiteURL, "/") + "/thanks.html"
}

type StripeConfig struct {
	WebhookSecret string
}

type EmailConfig struct {
	Provider         string
	ResendAPIKey     string
	ResendBaseURL    string
	From             string
	TelegramChatLink string
}

type TelemetryConfig struct {
	ServiceName string
	Endpoint    string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			GinMode:         getEnv("GIN_MODE", "release"),
			OutboundTimeout: getDuration("OUTBOUND_TIMEOUT", defaultOutboundTimeout),
			SinksDetached:   getBool("SINKS_DETACHED"),
		},
		Notion: NotionConfig{
			APIKey:     os.Getenv("NOTION_API_KEY"),
			DatabaseID: strings.ReplaceAll(getEnv("NOTION_DATABASE_ID", defaultNotionDatabaseID), "-", ""),
			BaseURL:    getEnv("NOTION_API_URL", "https://api.notion.com/v1"),
			Required:   getBool("REQUIRE_NOTION"),
		},
		Airtable: AirtableConfig{
			APIKey:  os.Getenv("AIRTABLE_API_KEY"),
			BaseID:  os.Getenv("AIRTABLE_BASE_ID"),
			Table:   getEnv("AIRTABLE_LEADS_TABLE", "Leads"),
			BaseURL: getEnv("AIRTABLE_API_URL", "https://api.airtable.com/v0"),
		},
		Sheets: SheetsConfig{
			WebhookURL: os.Getenv("SHEETS_WEBHOOK_URL"),
		},
		FormRelay: FormRelayConfig{
			URL: os.Getenv("FORM_RELAY_URL"),
		},
		YooKassa: YooKassaConfig{
			ShopID:    strings.TrimSpace(os.Getenv("YOOKASSA_SHOP_ID")),
			SecretKey: strings.TrimSpace(os.Getenv("YOOKASSA_SECRET_KEY")),
			SiteURL:   strings.TrimSpace(os.Getenv("SITE_URL")),
			BaseURL:   getEnv("YOOKASSA_API_URL", "https://api.yookassa.ru/v3"),
			Currency:  getEnv("YOOKASSA_CURRENCY", "RUB"),
		},
		Stripe: StripeConfig{
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		Email: EmailConfig{
			Provider:         strings.ToLower(os.Getenv("EMAIL_PROVIDER")),
			ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
			ResendBaseURL:    getEnv("RESEND_API_URL", "https://api.resend.com"),
			From:             getEnv("CONFIRMATION_FROM_EMAIL", defaultFromEmail),
			TelegramChatLink: os.Getenv("TELEGRAM_CHAT_LINK"),
		},
		Telemetry: TelemetryConfig{
			ServiceName: getEnv("SERVICE_NAME", "lead-capture"),
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"),
		},
		Pricing: DefaultPricing(),
	}
}

// Pricing is the price table and the static checkout links for each price
type Pricing struct {
	Amounts       []int
	DefaultAmount int
	Links         map[models.PaymentMethod]map[int]string
}

// DefaultPricing is the deployed price table
func DefaultPricing() Pricing {
	return Pricing{
		Amounts:       []int{9990, 24990},
		DefaultAmount: 9990,
		Links: map[models.PaymentMethod]map[int]string{
			models.PaymentMethodStripe: {
				9990:  "https://buy.stripe.com/6oU8wP1rwbtZfzW8w23F603",
				24990: "https://buy.stripe.com/8x25kD8TY8hN4Vi27E3F604",
			},
			models.PaymentMethodYooKassa: {
				9990:  "https://yookassa.ru/my/i/aY41DlTAd6Eb/l",
				24990: "https://yookassa.ru/my/i/aY41dCCrZdsy/l",
			},
		},
	}
}

// Allows reports whether amount is a configured price
func (p Pricing) Allows(amount int) bool {
	for _, a := range p.Amounts {
		if a == amount {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
