package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "todohub/internal/adapter/http"
	"todohub/internal/core/telemetry"
	"todohub/pkg/config"
	"todohub/pkg/logger"
	"todohub/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger, err := logger.New("todohub")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer appLogger.Sync()

	otlpEndpoint := os.Getenv("OTLP_ENDPOINT")

	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	metricsPort := os.Getenv("METRICS_PORT")

	if metricsPort == "" {
		metricsPort = "9091"
	}

	t, err := tracing.InitTelemetry(tracing.TelemetryConfig{
		ServiceName:    "todohub",
		ServiceVersion: "1.0.0",
		MetricsPort:    metricsPort,
		OTLPEndpoint:   otlpEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer t.Shutdown(context.Background())

	metrics := telemetry.NewAppMetrics(t.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	cfg := config.GetDefaultConfig()

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
	}

	if err := api.StartServerWithConfig(ctx, metrics, appLogger, cfg); err != nil {
		log.Fatal("Server error:", err)
	}

	appLogger.Info(context.Background(), "Shutting down gracefully...")
}
