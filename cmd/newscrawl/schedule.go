package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	hhttp "newscrawl/internal/handler/http"
	"newscrawl/internal/observability/metrics"
	"newscrawl/internal/usecase/crawl"

	"github.com/spf13/cobra"
)

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run crawl passes on a recurring schedule until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default()

			p, err := newPipeline(logger, 0)
			if err != nil {
				return err
			}
			defer p.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if p.config.MetricsPort > 0 {
				startMetricsServer(ctx, logger, p)
			}

			scheduler := crawl.NewScheduler(p.service, crawl.SchedulerConfig{
				Interval:     p.config.Interval,
				CronSchedule: p.config.CronSchedule,
			}, logger)

			if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// startMetricsServer serves Prometheus metrics and health probes while the
// scheduler runs, and refreshes the connection pool gauges periodically.
func startMetricsServer(ctx context.Context, logger *slog.Logger, p *pipeline) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /healthz", &hhttp.HealthHandler{DB: p.db, Version: version()})
	mux.Handle("GET /livez", hhttp.LiveHandler{})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", p.config.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server started", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error("metrics server shutdown failed", slog.Any("error", err))
				}
				return
			case <-ticker.C:
				stats := p.db.Stats()
				metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
			}
		}
	}()
}
