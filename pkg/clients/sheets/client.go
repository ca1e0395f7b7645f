package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"lead-capture/pkg/models"
)

// Client defines the interface for appending rows to a spreadsheet webhook
type Client interface {
	AppendLead(ctx context.Context, lead models.NormalizedLead) error
}

type clientImpl struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient creates a new spreadsheet append client
func NewClient(webhookURL string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientImpl{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

// Row is the flat record appended to the sheet
type Row struct {
	Name          string  `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Amount        int     `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
}

// NewRow flattens a lead into a sheet row
func NewRow(lead models.NormalizedLead) Row {
	return Row{
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		Amount:        lead.Amount,
		PaymentMethod: string(lead.PaymentMethod),
		Status:        string(lead.Status),
		Date:          lead.Date,
		Time:          lead.Time,
	}
}

func (c *clientImpl) AppendLead(ctx context.Context, lead models.NormalizedLead) error {
	jsonPayload, err := json.Marshal(NewRow(lead))
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error appending sheet row: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("error from sheets webhook: status %d: %s", resp.StatusCode, string(body))
	}

	log.Printf("[Sheets] Appended row dated %s %s", lead.Date, lead.Time)
	return nil
}
