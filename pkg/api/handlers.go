package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lead-capture/pkg/services"
)

// Upper bound for request bodies; the landing form and provider events are small
const maxBodyBytes = 1 << 20

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	submissionService   services.LeadSubmissionService
	notificationService services.PaymentNotificationService
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	submissionService services.LeadSubmissionService,
	notificationService services.PaymentNotificationService,
) *Handlers {
	return &Handlers{
		submissionService:   submissionService,
		notificationService: notificationService,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// MethodNotAllowed answers any method a route does not accept
func (h *Handlers) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

// Preflight answers CORS preflight requests
func (h *Handlers) Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Processes lead submissions from the landing page and returns the checkout link
func (h *Handlers) HandleLeadSubmission(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		log.Printf("Error reading request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request"})
		return
	}

	result, err := h.submissionService.ProcessLeadSubmission(c.Request.Context(), body)
	switch {
	case errors.Is(err, services.ErrNotionKeyMissing):
		log.Printf("[Submission] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrMalformedBody):
		log.Printf("[Submission] Error parsing JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	case err != nil:
		log.Printf("[Submission] Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleStripeWebhook verifies and processes Stripe checkout events.
// The body is read as raw bytes and only decoded after the signature matches.
func (h *Handlers) HandleStripeWebhook(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		log.Printf("[Webhook] Error reading Stripe body: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := h.notificationService.ParseStripeEvent(body, c.GetHeader("Stripe-Signature"))
	switch {
	case errors.Is(err, services.ErrWebhookSecretMissing):
		log.Printf("[Webhook] %v", err)
		c.Status(http.StatusInternalServerError)
		return
	case errors.Is(err, services.ErrSignature):
		log.Printf("[Webhook] Stripe webhook signature verification failed: %v", err)
		c.Status(http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("[Webhook] Error parsing Stripe event: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	h.notificationService.NotifyPaymentSucceeded(c.Request.Context(), event)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// HandleYooKassaWebhook processes YooKassa payment notifications
func (h *Handlers) HandleYooKassaWebhook(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		log.Printf("[Webhook] Error reading YooKassa body: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := h.notificationService.ParseYooKassaEvent(body)
	if err != nil {
		log.Printf("[Webhook] Error parsing YooKassa event: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	h.notificationService.NotifyPaymentSucceeded(c.Request.Context(), event)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// CheckYooKassa reports whether card payments go through the API or static links.
// It never exposes credentials.
func (h *Handlers) CheckYooKassa(c *gin.Context) {
	enabled := h.submissionService.DynamicPaymentsEnabled()

	message := "Static payment links are in use. Set YOOKASSA_SHOP_ID, YOOKASSA_SECRET_KEY and SITE_URL and redeploy."
	if enabled {
		message = "YooKassa API is in use (return_url points to thanks.html)."
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{
		"yookassaApi":   enabled,
		"timeInPayload": true,
		"message":       message,
	})
}

func readBody(c *gin.Context) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
}
