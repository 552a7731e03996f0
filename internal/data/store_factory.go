// Package data assembles the configured record store backend.
package data

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contable-ledger/internal/config"
	"github.com/contable-ledger/internal/data/csvfile"
	storemongo "github.com/contable-ledger/internal/data/mongo"
	storepostgres "github.com/contable-ledger/internal/data/postgres"
	"github.com/contable-ledger/internal/data/sheets"
	"github.com/contable-ledger/internal/domain/journal"
	"github.com/contable-ledger/internal/platform/persistence"
)

// CloseFunc releases the resources behind a store. Stores without
// underlying connections return a no-op.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// NewRecordStore builds the record store for the named backend. The
// postgres backend also runs its schema migrations before returning.
func NewRecordStore(ctx context.Context, logger *slog.Logger, cfg *config.Config, backend string) (journal.RecordStore, CloseFunc, error) {
	switch backend {
	case config.BackendCSV:
		return csvfile.NewRecordStore(logger, cfg.CSV.Path), noopClose, nil

	case config.BackendSheets:
		store, err := sheets.NewRecordStore(ctx, logger, &cfg.Sheets)
		if err != nil {
			return nil, nil, err
		}
		return store, noopClose, nil

	case config.BackendPostgres:
		// NewPostgresDB runs the schema migrations before returning
		db, err := persistence.NewPostgresDB(ctx, logger, &cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(context.Context) error {
			db.Close()
			return nil
		}
		return storepostgres.NewRecordStore(logger, db), closeFn, nil

	case config.BackendMongo:
		db, err := persistence.NewMongoDB(ctx, logger, &cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		return storemongo.NewRecordStore(logger, db.Database()), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
