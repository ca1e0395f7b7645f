package bootstrap

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lead-capture/pkg/api"
	"lead-capture/pkg/clients/airtable"
	"lead-capture/pkg/clients/formrelay"
	"lead-capture/pkg/clients/notion"
	"lead-capture/pkg/clients/resend"
	"lead-capture/pkg/clients/ses"
	"lead-capture/pkg/clients/sheets"
	"lead-capture/pkg/clients/yookassa"
	"lead-capture/pkg/config"
	"lead-capture/pkg/email"
	"lead-capture/pkg/services"
	"lead-capture/pkg/utils"
)

// NewRouter wires clients, services and handlers from cfg. Every integration
// whose credentials are missing is simply left out.
func NewRouter(ctx context.Context, cfg *config.Config) *gin.Engine {
	httpClient := utils.NewHTTPClient(cfg.Server.OutboundTimeout)

	var payments yookassa.Client
	if cfg.YooKassa.Enabled() {
		payments = yookassa.NewClient(cfg.YooKassa.ShopID, cfg.YooKassa.SecretKey, cfg.YooKassa.BaseURL, cfg.YooKassa.Currency, httpClient)
	}

	submissionService := services.NewLeadSubmissionService(payments, Sinks(cfg, httpClient), cfg)
	notificationService := services.NewPaymentNotificationService(PickSender(ctx, cfg, httpClient), cfg)

	return api.NewRouter(api.NewHandlers(submissionService, notificationService))
}

// Sinks returns a sink for every configured record store
func Sinks(cfg *config.Config, httpClient *http.Client) []services.Sink {
	var sinks []services.Sink
	if cfg.Notion.Enabled() {
		sinks = append(sinks, services.NewNotionSink(
			notion.NewClient(cfg.Notion.APIKey, cfg.Notion.DatabaseID, cfg.Notion.BaseURL, httpClient)))
	}
	if cfg.Airtable.Enabled() {
		sinks = append(sinks, services.NewAirtableSink(
			airtable.NewClient(cfg.Airtable.APIKey, cfg.Airtable.BaseID, cfg.Airtable.Table, cfg.Airtable.BaseURL, httpClient)))
	}
	if cfg.Sheets.Enabled() {
		sinks = append(sinks, services.NewSheetsSink(sheets.NewClient(cfg.Sheets.WebhookURL, httpClient)))
	}
	if cfg.FormRelay.Enabled() {
		sinks = append(sinks, services.NewFormRelaySink(formrelay.NewClient(cfg.FormRelay.URL, httpClient)))
	}

	names := make([]string, 0, len(sinks))
	for _, s := range sinks {
		names = append(names, s.Name())
	}
	log.Printf("Record sinks enabled: %v", names)
	return sinks
}

// PickSender selects the email transport. Resend is used when its key is set
// unless another provider is named explicitly.
func PickSender(ctx context.Context, cfg *config.Config, httpClient *http.Client) email.Sender {
	switch cfg.Email.Provider {
	case "ses":
		sender, err := ses.NewClient(ctx, cfg.Email.From)
		if err != nil {
			log.Printf("SES unavailable, confirmation emails disabled: %v", err)
			return nil
		}
		return sender
	case "log":
		return email.LogSender{}
	}

	if cfg.Email.ResendAPIKey != "" {
		return resend.NewClient(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.ResendBaseURL, httpClient)
	}

	log.Printf("RESEND_API_KEY not set, confirmation emails disabled")
	return nil
}
