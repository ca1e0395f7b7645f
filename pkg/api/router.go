package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lead-capture/pkg/middleware"
)

// Lead submission paths. The second mirrors the Netlify function URL so
// landing pages built for either host keep working.
var leadPaths = []string{
	"/api/send-to-notion",
	"/.netlify/functions/send-to-notion",
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.HandleMethodNotAllowed = true
	router.NoMethod(h.MethodNotAllowed)

	for _, path := range leadPaths {
		router.POST(path, h.HandleLeadSubmission)
		router.OPTIONS(path, h.Preflight)
	}

	router.POST("/api/webhook-stripe", h.HandleStripeWebhook)
	router.POST("/api/webhook-yookassa", h.HandleYooKassaWebhook)
	router.GET("/api/check-yookassa", h.CheckYooKassa)
	router.GET("/health", h.HealthCheck)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
