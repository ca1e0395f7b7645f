package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"lead-capture/pkg/bootstrap"
	"lead-capture/pkg/config"
	"lead-capture/pkg/telemetry"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file loaded, using process environment")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	shutdown := telemetry.InitTracer(cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
	defer shutdown()

	gin.SetMode(cfg.Server.GinMode)

	// Wire clients, services and handlers
	router := bootstrap.NewRouter(context.Background(), cfg)

	// Start the server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, otelhttp.NewHandler(router, "lead-capture")); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
