package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finbuzz/finbuzz/internal/config"
	"github.com/finbuzz/finbuzz/internal/profile"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Initialize or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			// Only the storage settings matter here; skip full validation
			// so migrations run without LLM or banking credentials.
			cfg := &config.Config{
				Storage: config.StorageConfig{
					DataDir: config.ExpandPath(viper.GetString("storage.data_dir")),
				},
			}
			if cfg.Storage.DataDir == "" {
				return fmt.Errorf("storage.data_dir must not be empty")
			}

			if err := os.MkdirAll(cfg.Storage.DataDir, 0o700); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			db, err := sql.Open("sqlite3", cfg.DatabasePath()+"?_journal_mode=WAL&_foreign_keys=on")
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			// Constructors own their schemas; running them is the migration.
			if _, err := profile.NewLocalAuthenticator(db); err != nil {
				return err
			}
			if _, err := profile.NewSQLiteStore(db); err != nil {
				return err
			}

			slog.Info("database schema up to date", "path", cfg.DatabasePath())
			return nil
		},
	}
}
