package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mkaspar/larder/internal/database"
	"github.com/mkaspar/larder/internal/logging"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("LARDER_LOG_LEVEL"), os.Getenv("LARDER_LOG_JSON") == "true")

	var dbPath string

	root := &cobra.Command{
		Use:          "larder",
		Short:        "Household grocery catalog, shopping list, order and inventory engine",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", envOr("LARDER_DB_PATH", "larder.db"), "path to the sqlite database file")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			logger.Info("schema is up to date", "db", dbPath)
			return nil
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample categories, products and a demo user (no-op if data exists)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.Seed(db); err != nil {
				return err
			}
			logger.Info("sample data ready", "db", dbPath)
			return nil
		},
	}

	root.AddCommand(migrateCmd, seedCmd)

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
