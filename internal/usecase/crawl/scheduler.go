package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerConfig holds the recurring-run settings.
type SchedulerConfig struct {
	// Interval between crawl passes, measured from the end of one pass to
	// the start of the next.
	Interval time.Duration
	// CronSchedule, when non-empty, replaces the interval loop with a cron
	// expression. Overlapping runs are skipped.
	CronSchedule string
}

// Scheduler runs crawl passes on a recurring schedule. On startup it seeds
// an empty store with a bootstrap pass before entering the regular cadence.
type Scheduler struct {
	service *Service
	config  SchedulerConfig
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler. A nil logger defaults to slog.Default().
func NewScheduler(service *Service, config SchedulerConfig, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{service: service, config: config, logger: logger}
}

// Run blocks until the context is cancelled, executing crawl passes on the
// configured cadence. Pass failures are logged and the schedule continues.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.bootstrapIfEmpty(ctx); err != nil {
		return err
	}

	if s.config.CronSchedule != "" {
		return s.runCron(ctx)
	}
	return s.runInterval(ctx)
}

// bootstrapIfEmpty runs a bootstrap pass when the store holds no articles.
func (s *Scheduler) bootstrapIfEmpty(ctx context.Context) error {
	count, err := s.service.Repo.CountArticles(ctx)
	if err != nil {
		return fmt.Errorf("count stored articles: %w", err)
	}
	if count > 0 {
		s.logger.Info("store already populated, skipping bootstrap",
			slog.Int64("articles", count))
		return nil
	}

	s.logger.Info("store is empty, running bootstrap pass")
	s.runOnce(ctx, RunOptions{Bootstrap: true})
	return ctx.Err()
}

// runInterval runs passes in a loop, waiting the configured interval after
// each pass completes.
func (s *Scheduler) runInterval(ctx context.Context) error {
	s.logger.Info("scheduler started",
		slog.Duration("interval", s.config.Interval))

	for {
		s.runOnce(ctx, RunOptions{})

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping")
			return ctx.Err()
		case <-time.After(s.config.Interval):
		}
	}
}

// runCron runs passes on the configured cron expression. A pass still in
// flight when the next tick fires causes that tick to be skipped.
func (s *Scheduler) runCron(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(s.config.CronSchedule, func() {
		s.runOnce(ctx, RunOptions{})
	})
	if err != nil {
		return fmt.Errorf("parse cron schedule %q: %w", s.config.CronSchedule, err)
	}

	s.logger.Info("cron scheduler started",
		slog.String("schedule", s.config.CronSchedule))
	c.Start()

	<-ctx.Done()
	s.logger.Info("scheduler stopping")

	stopCtx := c.Stop()
	<-stopCtx.Done()
	return ctx.Err()
}

// runOnce executes one pass, logging instead of propagating failures so a
// bad pass never kills the schedule.
func (s *Scheduler) runOnce(ctx context.Context, opts RunOptions) {
	if ctx.Err() != nil {
		return
	}

	if _, err := s.service.RunPass(ctx, opts); err != nil {
		s.logger.Error("crawl pass failed",
			slog.Bool("bootstrap", opts.Bootstrap),
			slog.Any("error", err))
	}
}
