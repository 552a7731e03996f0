package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contable-ledger/internal/domain/journal"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

const insertPattern = `INSERT INTO ledger_records`

func TestRecordStore_Append(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := &RecordStore{pool: mock, logger: newTestLogger()}

	entryID := uuid.New()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	records := []*journal.LedgerRecord{
		{EntryID: entryID, Date: date, Document: "FAC-042", Account: "1105", Debit: decimal.NewFromInt(1000), SubmittedBy: "ana"},
		{EntryID: entryID, Date: date, Document: "FAC-042", Account: "4135", Credit: decimal.NewFromInt(1000), SubmittedBy: "ana"},
	}

	t.Run("AllRowsInOneTransaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(insertPattern).
			WithArgs(&entryID, &date, "FAC-042", "", "1105", "", 1000.0, 0.0, "", "", "ana").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(insertPattern).
			WithArgs(&entryID, &date, "FAC-042", "", "4135", "", 0.0, 1000.0, "", "", "ana").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
		mock.ExpectRollback()

		err := store.Append(ctx, records)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FailedInsertRollsBackWholeEntry", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		mock.ExpectBegin()
		mock.ExpectExec(insertPattern).
			WithArgs(&entryID, &date, "FAC-042", "", "1105", "", 1000.0, 0.0, "", "", "ana").
			WillReturnError(dbErr)
		mock.ExpectRollback()

		err := store.Append(ctx, records)
		assert.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyBatchIsNoOp", func(t *testing.T) {
		err := store.Append(ctx, nil)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecordStore_LoadAll(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := &RecordStore{pool: mock, logger: newTestLogger()}

	columns := []string{"entry_id", "fecha", "documento", "tercero", "cuenta", "descripcion", "debito", "credito", "centro_costo", "unidad_negocio", "usuario_registro"}

	t.Run("Success", func(t *testing.T) {
		entryID := uuid.New()
		date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		rows := pgxmock.NewRows(columns).
			AddRow(&entryID, &date, "FAC-042", "El Sol", "1105", "Venta", 1000.0, 0.0, "", "Principal", "ana").
			AddRow((*uuid.UUID)(nil), (*time.Time)(nil), "CE-17", "", "5135", "Arriendo", 450.0, 0.0, "", "", "luis")

		mock.ExpectQuery(`SELECT .+ FROM ledger_records`).WillReturnRows(rows)

		records, err := store.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, entryID, records[0].EntryID)
		assert.Equal(t, date, records[0].Date)
		assert.True(t, decimal.NewFromInt(1000).Equal(records[0].Debit))

		// legacy row without entry id or date
		assert.Equal(t, uuid.Nil, records[1].EntryID)
		assert.True(t, records[1].Date.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryFailureDegradesToEmpty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM ledger_records`).WillReturnError(errors.New("relation does not exist"))

		records, err := store.LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
