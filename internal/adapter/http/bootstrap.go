package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"todohub/internal/adapter/http/routes"
	"todohub/internal/core/telemetry"
	"todohub/pkg/config"
	"todohub/pkg/logger"
)

func StartServer(ctx context.Context, metrics *telemetry.AppMetrics, appLogger *logger.AppLogger) error {
	return StartServerWithConfig(ctx, metrics, appLogger, config.GetDefaultConfig())
}

func StartServerWithConfig(ctx context.Context, metrics *telemetry.AppMetrics, appLogger *logger.AppLogger, cfg *config.AppConfig) error {
	container, err := NewContainer(ctx, cfg, metrics)

	if err != nil {
		return err
	}

	defer container.Close()

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler:     container.AuthHandler,
		UserHandler:     container.UserHandler,
		TodoHandler:     container.TodoHandler,
		CategoryHandler: container.CategoryHandler,
		TagHandler:      container.TagHandler,
	}, metrics, appLogger, cfg)

	port := os.Getenv("PORT")

	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting",
		"port", port,
		"environment", cfg.Environment,
		"database_adapter", cfg.DatabaseAdapter,
		"rate_limit_enabled", cfg.RateLimitEnabled)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		slog.Error("Server failed to start", "error", err)
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
