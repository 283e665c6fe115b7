package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"Mansoor88-6/mastery-tracker/internal/auth"
	"Mansoor88-6/mastery-tracker/internal/config"
	"Mansoor88-6/mastery-tracker/internal/handler"
	"Mansoor88-6/mastery-tracker/internal/router"
	"Mansoor88-6/mastery-tracker/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Starting mastery tracker",
		zap.String("env", cfg.Env),
		zap.String("config_path", configPath),
		zap.String("database_driver", cfg.Database.Driver),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openBackend(ctx, cfg.Database, log.Logger)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	defer store.close()

	provider, err := newAuthProvider(cfg.Auth, log.Logger)
	if err != nil {
		return err
	}

	taskService := service.NewTaskService(store.tasks, store.entries, store.tx)
	timeEntryService := service.NewTimeEntryService(store.tasks, store.entries, store.tx)
	journalService := service.NewJournalService(store.journal, cfg.Journal.Location())

	handlers := router.Handlers{
		Tasks:       handler.NewTaskHandler(taskService, log.Logger),
		TimeEntries: handler.NewTimeEntryHandler(timeEntryService, log.Logger),
		Journal:     handler.NewJournalHandler(journalService, log.Logger),
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router.New(handlers, provider, cfg.Server, log.Logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("address", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
	case <-ctx.Done():
		log.Info("Received shutdown signal")
	}

	log.Info("Shutting down mastery tracker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
		return err
	}

	log.Info("Mastery tracker stopped")
	return nil
}

func newAuthProvider(cfg config.Auth, logger *zap.Logger) (auth.Provider, error) {
	switch cfg.Mode {
	case config.AuthModeRemote:
		logger.Info("Using remote identity provider", zap.String("base_url", cfg.BaseURL))
		return auth.NewRemoteProvider(cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger), nil
	case config.AuthModeStatic:
		logger.Warn("Using static tokens for authentication, do not use in production",
			zap.Int("token_count", len(cfg.StaticTokens)),
		)
		return auth.NewStaticProvider(cfg.StaticTokens), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}

