package formrelay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-capture/pkg/models"
)

func TestRelayLead(t *testing.T) {
	var (
		got    map[string]interface{}
		accept string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	email := "anna@example.com"
	lead := models.NormalizedLead{Name: "Анна", Email: &email, Amount: 24990, PaymentMethod: models.PaymentMethodStripe}
	require.NoError(t, NewClient(srv.URL, srv.Client()).RelayLead(context.Background(), lead))

	assert.Equal(t, "application/json", accept)
	assert.Equal(t, "Новая заявка: Анна (24990 ₽)", got["_subject"])
	assert.Equal(t, "anna@example.com", got["email"])
	assert.Equal(t, "stripe", got["paymentMethod"])
}

func TestRelayLeadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, srv.Client()).RelayLead(context.Background(), models.NormalizedLead{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
