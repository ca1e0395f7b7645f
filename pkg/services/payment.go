package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"lead-capture/pkg/clients/yookassa"
	"lead-capture/pkg/config"
	"lead-capture/pkg/models"
	"lead-capture/pkg/utils"
)

// tryCreateDynamicSession asks YooKassa for a per-request checkout and returns
// its confirmation URL. It returns false whenever the static link should stand.
func tryCreateDynamicSession(ctx context.Context, client yookassa.Client, cfg config.YooKassaConfig, lead models.NormalizedLead, now time.Time) (string, bool) {
	if client == nil || !cfg.Enabled() || lead.PaymentMethod != models.PaymentMethodYooKassa {
		return "", false
	}

	metadata := map[string]string{"customer_name": lead.Name}
	if lead.Email != nil {
		metadata["customer_email"] = *lead.Email
	}

	payment, err := client.CreatePayment(ctx, yookassa.PaymentRequest{
		Amount:         lead.Amount,
		Description:    fmt.Sprintf("Интенсив Cursor для менеджеров, %d ₽", lead.Amount),
		ReturnURL:      cfg.ReturnURL(),
		IdempotenceKey: utils.NewIdempotencyKey(now),
		Metadata:       metadata,
	})
	if err != nil {
		log.Printf("[Submission] YooKassa payment creation failed, using static link: %v", err)
		return "", false
	}

	return payment.Confirmation.ConfirmationURL, true
}
