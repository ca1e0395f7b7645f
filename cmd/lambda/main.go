package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"

	"lead-capture/pkg/api"
	"lead-capture/pkg/bootstrap"
	"lead-capture/pkg/config"
	"lead-capture/pkg/telemetry"
)

var router *gin.Engine

func handler(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return api.ServeAPIGatewayV2(ctx, router, request)
}

func main() {
	cfg := config.LoadConfig()
	// Persistence must finish inside the invocation; the platform freezes the
	// process once the response is returned
	cfg.Server.SinksDetached = false

	shutdown := telemetry.InitTracer(cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
	defer shutdown()

	gin.SetMode(cfg.Server.GinMode)
	router = bootstrap.NewRouter(context.Background(), cfg)

	lambda.Start(handler)
}
