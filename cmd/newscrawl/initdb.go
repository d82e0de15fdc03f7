package main

import (
	"fmt"
	"log/slog"

	"newscrawl/internal/infra/db"

	"github.com/spf13/cobra"
)

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the article schema if it does not exist",
		RunE: func(_ *cobra.Command, _ []string) error {
			database, err := db.Open()
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() {
				if err := database.Close(); err != nil {
					slog.Default().Error("failed to close database", slog.Any("error", err))
				}
			}()

			if err := db.MigrateUp(database); err != nil {
				return fmt.Errorf("migrate schema: %w", err)
			}

			slog.Default().Info("schema is up to date")
			return nil
		},
	}
}
