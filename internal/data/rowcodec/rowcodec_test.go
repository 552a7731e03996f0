package rowcodec

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contable-ledger/internal/domain/journal"
)

func TestRoundTrip(t *testing.T) {
	rec := &journal.LedgerRecord{
		EntryID:      uuid.New(),
		Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Document:     "FAC-042",
		Counterparty: "Distribuidora El Sol",
		Account:      "4135",
		Description:  "Venta de mercancia",
		Debit:        decimal.Zero,
		Credit:       decimal.NewFromFloat(1190.50),
		CostCenter:   "Ventas",
		BusinessUnit: "Principal",
		SubmittedBy:  "ana",
	}

	t.Run("Strings", func(t *testing.T) {
		decoded := FromStrings(ToStrings(rec))
		assert.Equal(t, rec.EntryID, decoded.EntryID)
		assert.Equal(t, rec.Date, decoded.Date)
		assert.Equal(t, rec.Document, decoded.Document)
		assert.Equal(t, rec.Account, decoded.Account)
		assert.True(t, rec.Credit.Equal(decoded.Credit))
		assert.True(t, decoded.Debit.IsZero())
		assert.Equal(t, rec.SubmittedBy, decoded.SubmittedBy)
	})

	t.Run("Values", func(t *testing.T) {
		decoded := FromValues(ToValues(rec))
		assert.Equal(t, rec.EntryID, decoded.EntryID)
		assert.True(t, rec.Credit.Equal(decoded.Credit))
		assert.Equal(t, rec.BusinessUnit, decoded.BusinessUnit)
	})
}

func TestFromStrings_Coercion(t *testing.T) {
	t.Run("MalformedAmountsCoerceToZero", func(t *testing.T) {
		rec := FromStrings([]string{"2024-01-01", "D1", "", "1105", "", "abc", "", "", "", "ana"})
		assert.True(t, rec.Debit.IsZero())
		assert.True(t, rec.Credit.IsZero())
	})

	t.Run("LegacyTenColumnRow", func(t *testing.T) {
		rec := FromStrings([]string{"2024-01-01", "D1", "T", "1105", "x", "100.00", "0.00", "", "", "ana"})
		assert.Equal(t, uuid.Nil, rec.EntryID)
		assert.True(t, decimal.NewFromInt(100).Equal(rec.Debit))
	})

	t.Run("ShortRowPadded", func(t *testing.T) {
		rec := FromStrings([]string{"", "D1"})
		assert.Equal(t, "D1", rec.Document)
		assert.Empty(t, rec.Account)
		assert.True(t, rec.Date.IsZero())
	})
}

func TestCoerceDate(t *testing.T) {
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), CoerceDate("2024-03-15"))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), CoerceDate("15/03/2024"))
	assert.True(t, CoerceDate("no es fecha").IsZero())
	assert.True(t, CoerceDate("").IsZero())
}

func TestFromValues_CellTypes(t *testing.T) {
	rec := FromValues([]interface{}{"2024-03-15", "D1", nil, "1105", "detalle", 1000.5, "", "", "", "ana"})
	require.NotNil(t, rec)
	assert.True(t, decimal.NewFromFloat(1000.5).Equal(rec.Debit))
	assert.Empty(t, rec.Counterparty)
}

func TestHeader(t *testing.T) {
	header := Header()
	require.Len(t, header, NumColumns)
	// legacy column order is load-bearing for existing stored data
	assert.Equal(t, []string{"Fecha", "Documento", "Tercero", "Cuenta", "Descripcion", "Debito", "Credito", "Centro_Costo", "Unidad_Negocio", "Usuario_Registro"}, header[:10])
}
