package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"lead-capture/pkg/models"
)

// Client defines the interface for interacting with Airtable API
type Client interface {
	CreateLeadRecord(ctx context.Context, lead models.NormalizedLead, shape models.RecordShape) error
}

type clientImpl struct {
	apiKey     string
	baseID     string
	table      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Airtable client writing to a single table
func NewClient(apiKey, baseID, table, baseURL string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientImpl{
		apiKey:     apiKey,
		baseID:     baseID,
		table:      table,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// APIError is an error body returned by Airtable
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error from Airtable API: status %d, %s: %s", e.StatusCode, e.Type, e.Message)
}

// SchemaRejected reports whether the table schema refused the fields
func (e *APIError) SchemaRejected() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}

func (c *clientImpl) CreateLeadRecord(ctx context.Context, lead models.NormalizedLead, shape models.RecordShape) error {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(c.table))

	// Format data for Airtable API
	payload := map[string]interface{}{
		"records": []map[string]interface{}{
			{
				"fields": Fields(lead, shape),
			},
		},
	}
	// Plain status lets Airtable coerce the label into whatever the column accepts
	if shape == models.ShapePlainStatus {
		payload["typecast"] = true
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	// Add authentication and content type headers
	req.Header.Add("Authorization", "Bearer "+c.apiKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error creating Airtable record: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseError(resp.StatusCode, body)
	}

	log.Printf("[Airtable] Created record in table %s (shape=%s)", c.table, shape)
	return nil
}

// Fields encodes a lead as Airtable record fields for the given shape
func Fields(lead models.NormalizedLead, shape models.RecordShape) map[string]interface{} {
	fields := map[string]interface{}{
		"Name": lead.Name,
	}
	// Airtable treats a missing field as empty, so absent contacts are omitted
	if lead.Email != nil {
		fields["Email"] = *lead.Email
	}
	if lead.Phone != nil {
		fields["Phone"] = *lead.Phone
	}

	if shape.IncludesAmount() {
		fields["Amount"] = lead.Amount
		fields["Date"] = lead.Date
	}

	if shape.IncludesBusinessFields() {
		fields["Payment"] = lead.PaymentMethod.Label()
		fields["Status"] = string(lead.Status)
	}

	return fields
}

// Airtable reports errors either as {"error":{"type","message"}} or {"error":"TYPE"}
func parseError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status, Message: string(body)}

	var structured struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Error.Type != "" {
		apiErr.Type = structured.Error.Type
		apiErr.Message = structured.Error.Message
		return apiErr
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		apiErr.Type = flat.Error
	}
	return apiErr
}
