package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"lead-capture/pkg/models"
)

const (
	notionVersion  = "2022-06-28"
	maxTextLength  = 2000
	validationCode = "validation_error"
)

// Database property names
const (
	PropName    = "Name"
	PropEmail   = "Email"
	PropPhone   = "Phone"
	PropAmount  = "Amount"
	PropPayment = "Payment"
	PropStatus  = "Status"
	PropDate    = "Date"
)

// Client defines the interface for interacting with Notion API
type Client interface {
	CreateLeadPage(ctx context.Context, lead models.NormalizedLead, shape models.RecordShape) error
}

type clientImpl struct {
	apiKey     string
	databaseID string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Notion client
func NewClient(apiKey, databaseID, baseURL string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientImpl{
		apiKey:     apiKey,
		databaseID: strings.ReplaceAll(databaseID, "-", ""),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// APIError is an error body returned by Notion
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error from Notion API: status %d, %s: %s", e.StatusCode, e.Code, e.Message)
}

// SchemaRejected reports whether the database schema refused the payload
func (e *APIError) SchemaRejected() bool {
	return e.StatusCode == http.StatusBadRequest && e.Code == validationCode
}

func (c *clientImpl) CreateLeadPage(ctx context.Context, lead models.NormalizedLead, shape models.RecordShape) error {
	payload := map[string]interface{}{
		"parent":     map[string]string{"database_id": c.databaseID},
		"properties": Properties(lead, shape),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pages", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+c.apiKey)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Notion-Version", notionVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error creating Notion page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = string(body)
		}
		return apiErr
	}

	log.Printf("[Notion] Created page in database %s (shape=%s)", c.databaseID, shape)
	return nil
}

// Properties encodes a lead as Notion page properties for the given shape
func Properties(lead models.NormalizedLead, shape models.RecordShape) map[string]interface{} {
	props := map[string]interface{}{
		PropName:  map[string]interface{}{"title": richText(lead.Name)},
		PropEmail: map[string]interface{}{"email": lead.Email},
		PropPhone: map[string]interface{}{"phone_number": lead.Phone},
	}

	if shape.IncludesAmount() {
		props[PropAmount] = map[string]interface{}{"number": lead.Amount}
		props[PropDate] = map[string]interface{}{"date": map[string]string{"start": lead.Date}}
	}

	if shape.IncludesBusinessFields() {
		props[PropPayment] = map[string]interface{}{"rich_text": richText(lead.PaymentMethod.Label())}
		if shape == models.ShapeTypedStatus {
			props[PropStatus] = map[string]interface{}{"select": map[string]string{"name": string(lead.Status)}}
		} else {
			props[PropStatus] = map[string]interface{}{"rich_text": richText(string(lead.Status))}
		}
	}

	return props
}

func richText(content string) []map[string]interface{} {
	if r := []rune(content); len(r) > maxTextLength {
		content = string(r[:maxTextLength])
	}
	return []map[string]interface{}{
		{"type": "text", "text": map[string]string{"content": content}},
	}
}
