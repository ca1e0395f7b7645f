package formrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"lead-capture/pkg/clients/sheets"
	"lead-capture/pkg/models"
)

// Client defines the interface for posting leads to a form relay service
type Client interface {
	RelayLead(ctx context.Context, lead models.NormalizedLead) error
}

type clientImpl struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new form relay client
func NewClient(endpoint string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientImpl{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Submission is the sheet row plus the subject line the relay uses for its notification
type Submission struct {
	sheets.Row
	Subject string `json:"_subject"`
}

// Subject builds the relay notification subject for a lead
func Subject(lead models.NormalizedLead) string {
	return fmt.Sprintf("Новая заявка: %s (%d ₽)", lead.Name, lead.Amount)
}

func (c *clientImpl) RelayLead(ctx context.Context, lead models.NormalizedLead) error {
	jsonPayload, err := json.Marshal(Submission{Row: sheets.NewRow(lead), Subject: Subject(lead)})
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error relaying form: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("error from form relay: status %d: %s", resp.StatusCode, string(body))
	}

	log.Printf("[FormRelay] Relayed lead submitted %s %s", lead.Date, lead.Time)
	return nil
}
