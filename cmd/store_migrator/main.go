package main

import (
	"context"
	"fmt"
	"os"

	"github.com/contable-ledger/internal/config"
	"github.com/contable-ledger/internal/data"
	"github.com/contable-ledger/internal/logger"
	"github.com/contable-ledger/internal/migrator"
)

func main() {
	ctx := context.Background()

	// Initialize configuration
	cfg, err := config.LoadConfig("store_migrator")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateMigrator(); err != nil {
		fmt.Printf("Invalid migrator configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize both stores
	source, closeSource, err := data.NewRecordStore(ctx, log, cfg, cfg.Migrator.Source)
	if err != nil {
		log.Error("Failed to initialize source store", "backend", cfg.Migrator.Source, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeSource(ctx); err != nil {
			log.Error("Error closing source store", "error", err)
		}
	}()

	target, closeTarget, err := data.NewRecordStore(ctx, log, cfg, cfg.Migrator.Target)
	if err != nil {
		log.Error("Failed to initialize target store", "backend", cfg.Migrator.Target, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeTarget(ctx); err != nil {
			log.Error("Error closing target store", "error", err)
		}
	}()

	log.Info("Starting migration",
		"source", cfg.Migrator.Source,
		"target", cfg.Migrator.Target,
		"workers", cfg.Migrator.WorkerPoolSize,
	)

	m, err := migrator.New(log, source, target, cfg.Migrator.WorkerPoolSize)
	if err != nil {
		log.Error("Failed to create migrator", "error", err)
		os.Exit(1)
	}
	defer m.Shutdown()

	result, err := m.Run(ctx)
	if err != nil {
		log.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	if result.Failed > 0 {
		log.Error("Migration finished with failed entries", "failed", result.Failed)
		os.Exit(1)
	}
	log.Info("Migration completed", "entries", result.Entries, "records", result.Records)
}
