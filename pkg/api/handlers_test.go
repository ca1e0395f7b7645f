package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-capture/pkg/config"
	"lead-capture/pkg/models"
	"lead-capture/pkg/services"
)

type fakeSubmissionService struct {
	calls   int
	result  models.RedirectResult
	err     error
	dynamic bool
}

func (f *fakeSubmissionService) ProcessLeadSubmission(ctx context.Context, raw []byte) (models.RedirectResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeSubmissionService) DynamicPaymentsEnabled() bool { return f.dynamic }

type recordingSender struct {
	to []string
}

func (r *recordingSender) Send(_ context.Context, to, subject, htmlBody string) error {
	r.to = append(r.to, to)
	return nil
}

func newTestRouter(sub services.LeadSubmissionService, sender *recordingSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Stripe: config.StripeConfig{WebhookSecret: "whsec_test"}}
	return NewRouter(NewHandlers(sub, services.NewPaymentNotificationService(sender, cfg)))
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestLeadSubmissionPreflight(t *testing.T) {
	sub := &fakeSubmissionService{}
	router := newTestRouter(sub, &recordingSender{})

	for _, path := range leadPaths {
		w := serve(router, http.MethodOptions, path, "")

		assert.Equal(t, http.StatusNoContent, w.Code, path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	}
	assert.Zero(t, sub.calls)
}

func TestLeadSubmissionWrongMethod(t *testing.T) {
	sub := &fakeSubmissionService{}
	router := newTestRouter(sub, &recordingSender{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := serve(router, method, "/api/send-to-notion", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
	}
	assert.Zero(t, sub.calls)
}

func TestLeadSubmissionResponses(t *testing.T) {
	tests := []struct {
		name     string
		sub      *fakeSubmissionService
		wantCode int
		wantBody string
	}{
		{
			name:     "redirect",
			sub:      &fakeSubmissionService{result: models.RedirectResult{RedirectURL: "https://yookassa.ru/my/i/aY41DlTAd6Eb/l"}},
			wantCode: http.StatusOK,
			wantBody: `{"redirectUrl":"https://yookassa.ru/my/i/aY41DlTAd6Eb/l"}`,
		},
		{
			name:     "malformed",
			sub:      &fakeSubmissionService{err: services.ErrMalformedBody},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Invalid JSON"}`,
		},
		{
			name:     "notion key missing",
			sub:      &fakeSubmissionService{err: services.ErrNotionKeyMissing},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"NOTION_API_KEY not set"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newTestRouter(tt.sub, &recordingSender{}), http.MethodPost, "/api/send-to-notion", `{"name":"Анна"}`)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestLeadSubmissionEndToEnd(t *testing.T) {
	cfg := &config.Config{Pricing: config.DefaultPricing()}
	sub := services.NewLeadSubmissionService(nil, nil, cfg)
	router := newTestRouter(sub, &recordingSender{})

	w := serve(router, http.MethodPost, "/.netlify/functions/send-to-notion", `{"paymentMethod":"stripe","amount":"24990"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.RedirectResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "https://buy.stripe.com/8x25kD8TY8hN4Vi27E3F604", got.RedirectURL)

	w = serve(router, http.MethodPost, "/api/send-to-notion", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	sender := &recordingSender{}
	router := newTestRouter(&fakeSubmissionService{}, sender)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook-stripe",
		strings.NewReader(`{"type":"checkout.session.completed","data":{"object":{"customer_email":"anna@example.com"}}}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, sender.to)
}

func TestYooKassaWebhook(t *testing.T) {
	sender := &recordingSender{}
	router := newTestRouter(&fakeSubmissionService{}, sender)

	w := serve(router, http.MethodPost, "/api/webhook-yookassa",
		`{"type":"notification","event":"payment.succeeded","object":{"status":"succeeded","metadata":{"customer_email":"anna@example.com"}}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
	assert.Equal(t, []string{"anna@example.com"}, sender.to)

	w = serve(router, http.MethodPost, "/api/webhook-yookassa",
		`{"type":"notification","event":"payment.canceled","object":{"status":"canceled","metadata":{"customer_email":"anna@example.com"}}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, sender.to, 1)

	w = serve(router, http.MethodPost, "/api/webhook-yookassa", `{"type":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckYooKassa(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		w := serve(newTestRouter(&fakeSubmissionService{dynamic: enabled}, &recordingSender{}), http.MethodGet, "/api/check-yookassa", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, enabled, got["yookassaApi"])
		assert.Equal(t, true, got["timeInPayload"])
		assert.NotEmpty(t, got["message"])
	}
}

func TestHealthAndNotFound(t *testing.T) {
	router := newTestRouter(&fakeSubmissionService{}, &recordingSender{})

	w := serve(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serve(router, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
