package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"party-loot-ledger/config"
	httpHandler "party-loot-ledger/internal/adapter/http/handler"
	fileStorage "party-loot-ledger/internal/adapter/storage/file"
	sqliteStorage "party-loot-ledger/internal/adapter/storage/sqlite"
	"party-loot-ledger/internal/core/ports"
	"party-loot-ledger/internal/service"
	"party-loot-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("backend", cfg.Storage.Backend).
		Msg("Starting party loot ledger")

	// Initialize the ledger store
	var (
		store   ports.LedgerStore
		checker ports.HealthChecker
	)
	switch cfg.Storage.Backend {
	case "sqlite":
		s, err := sqliteStorage.Open(cfg.Storage.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open SQLite ledger store")
		}
		defer s.Close()
		store, checker = s, s
	default:
		s, err := fileStorage.New(cfg.Storage.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open file ledger store")
		}
		store, checker = s, s
	}
	log.Info().Str("path", cfg.Storage.Path).Msg("Ledger store ready")

	// Initialize services
	ledgerSvc := service.NewLedgerService(store, log)
	splitSvc := service.NewSplitService(ledgerSvc, cfg.Split.Tolerance, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		SplitSvc:       splitSvc,
		HealthCheckers: []ports.HealthChecker{checker},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
