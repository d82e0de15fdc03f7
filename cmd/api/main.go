// Command api serves the read API over the article store: article listing
// and detail, health probes, and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	hhttp "newscrawl/internal/handler/http"
	harticle "newscrawl/internal/handler/http/article"
	"newscrawl/internal/handler/http/requestid"
	pgRepo "newscrawl/internal/infra/adapter/persistence/postgres"
	"newscrawl/internal/infra/db"
	"newscrawl/internal/observability/logging"
	"newscrawl/internal/observability/tracing"
	"newscrawl/pkg/config"

	"github.com/joho/godotenv"
)

const maxRequestBody = 1 << 20 // the API only takes query parameters

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	version := config.GetEnvString("VERSION", "dev")

	mux := http.NewServeMux()
	harticle.Register(mux, pgRepo.NewArticleRepo(database), logger)
	mux.Handle("GET /healthz", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET /livez", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	handler := hhttp.Chain(mux,
		tracing.Middleware,
		requestid.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.Metrics,
		hhttp.LimitRequestBody(maxRequestBody),
	)

	server := &http.Server{
		Addr:              config.GetEnvString("API_ADDR", ":8000"),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("read API started",
			slog.String("addr", server.Addr),
			slog.String("version", version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
