package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/contable-ledger/internal/auth"
	"github.com/contable-ledger/internal/config"
	"github.com/contable-ledger/internal/data"
	"github.com/contable-ledger/internal/domain/catalog"
	"github.com/contable-ledger/internal/logger"
	"github.com/contable-ledger/internal/platform/messaging/producers"
	"github.com/contable-ledger/internal/webapp"
	"github.com/contable-ledger/internal/webapp/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("ledger_service")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize the configured record store
	store, closeStore, err := data.NewRecordStore(appCtx, log, cfg, cfg.Store.Backend)
	if err != nil {
		log.Error("Failed to initialize record store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	log.Info("Record store initialized", "backend", cfg.Store.Backend)

	// Initialize the optional posted-entry event producer
	var producer producers.EventPublisher
	if cfg.Events.Enabled {
		kafkaProducer, err := producers.NewEntryPostedProducer(appCtx, log, &cfg.Events)
		if err != nil {
			log.Error("Failed to initialize Kafka producer", "error", err)
			os.Exit(1)
		}
		producer = kafkaProducer
	}

	// Assemble the catalog from config overrides
	cat := buildCatalog(&cfg.Catalog)

	// Initialize services
	sessions := service.NewSessionService(log, auth.NewStaticAuthenticator(cfg.Auth.Users), cfg.Session.TTL)
	journalService := service.NewJournalService(log, store, producer)
	reportService := service.NewReportService(log, store)

	// Initialize REST server
	server := webapp.NewServer(log, cfg, sessions, journalService, reportService, cat)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Error closing Kafka producer", "error", err)
		}
	}

	if err := closeStore(shutdownCtx); err != nil {
		log.Error("Error closing record store", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	} else {
		log.Info("Server shutdown completed successfully")
	}
}

// buildCatalog starts from the defaults and applies configured overrides.
func buildCatalog(cfg *config.CatalogConfig) *catalog.Catalog {
	cat := catalog.Default()
	if cfg.Accounts != "" {
		cat.Accounts = catalog.ParseAccounts(cfg.Accounts)
	}
	if cfg.CostCenters != "" {
		cat.CostCenters = catalog.ParseList(cfg.CostCenters)
	}
	if cfg.BusinessUnits != "" {
		cat.BusinessUnits = catalog.ParseList(cfg.BusinessUnits)
	}
	if cfg.Counterparties != "" {
		cat.Counterparties = catalog.ParseList(cfg.Counterparties)
	}
	return cat
}
