// Command newscrawl is the crawler CLI: schema setup, one-shot crawl
// passes, and the recurring scheduler.
package main

import (
	"log/slog"
	"os"

	"newscrawl/internal/observability/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "newscrawl",
	Short:         "Crawl a news site and store extracted articles",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd())
	rootCmd.AddCommand(crawlCmd())
	rootCmd.AddCommand(scheduleCmd())
}

// version reports the build version from the environment, "dev" when unset.
func version() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

func main() {
	// Load .env before anything reads the environment.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
