package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"newscrawl/internal/usecase/crawl"

	"github.com/spf13/cobra"
)

func crawlCmd() *cobra.Command {
	var (
		bootstrap  bool
		sinceHours int
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run one crawl pass and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newPipeline(slog.Default(), sinceHours)
			if err != nil {
				return err
			}
			defer p.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, err = p.service.RunPass(ctx, crawl.RunOptions{Bootstrap: bootstrap})
			return err
		},
	}

	cmd.Flags().BoolVar(&bootstrap, "bootstrap", false,
		"widen the recency window to the bootstrap lookback")
	cmd.Flags().IntVar(&sinceHours, "since-hours", 0,
		"override the recency window in hours for this pass")

	return cmd
}
