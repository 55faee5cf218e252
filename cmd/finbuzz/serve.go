package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finbuzz/finbuzz/internal/advisor"
	"github.com/finbuzz/finbuzz/internal/config"
	"github.com/finbuzz/finbuzz/internal/learn"
	"github.com/finbuzz/finbuzz/internal/llm"
	"github.com/finbuzz/finbuzz/internal/openbank"
	"github.com/finbuzz/finbuzz/internal/profile"
	"github.com/finbuzz/finbuzz/internal/server"
	"github.com/finbuzz/finbuzz/internal/session"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.Default()

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DatabasePath()+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	auth, err := profile.NewLocalAuthenticator(db)
	if err != nil {
		return fmt.Errorf("failed to init authenticator: %w", err)
	}
	store, err := profile.NewSQLiteStore(db)
	if err != nil {
		return fmt.Errorf("failed to init profile store: %w", err)
	}
	local, err := profile.NewLocalStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to init local store: %w", err)
	}

	gateway, err := profile.NewGateway(auth, store, local, profile.GatewayConfig{
		FetchTimeout: cfg.Profile.FetchTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to init profile gateway: %w", err)
	}
	defer gateway.Close()

	client, err := llm.NewClient(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		RateLimit:   cfg.LLM.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}

	var bank advisor.BankClient
	if cfg.OpenBank.Demo {
		logger.Info("using demo banking data")
		bank = openbank.NewDemoClient()
	} else {
		bank, err = openbank.NewClient(openbank.Config{
			BaseURL:     cfg.OpenBank.BaseURL,
			Username:    cfg.OpenBank.Username,
			Password:    cfg.OpenBank.Password,
			ConsumerKey: cfg.OpenBank.ConsumerKey,
		})
		if err != nil {
			return fmt.Errorf("failed to create openbank client: %w", err)
		}
	}

	adviser := advisor.New(bank, client, logger)
	loader := learn.NewLoader(client, logger)
	sessions := session.NewManager(adviser)

	srv := server.New(gateway, sessions, loader, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
