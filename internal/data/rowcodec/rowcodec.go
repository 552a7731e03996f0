// Package rowcodec translates ledger records to and from the
// order-significant row layout shared by the tabular stores:
//
//	Fecha, Documento, Tercero, Cuenta, Descripcion, Debito, Credito,
//	Centro_Costo, Unidad_Negocio, Usuario_Registro, ID_Asiento
//
// The first ten columns are the legacy layout and must keep their order
// and formatting to stay compatible with existing stored data. The
// trailing ID_Asiento column ties the rows of one submission together;
// readers tolerate its absence on legacy rows.
//
// All read-side coercion lives here: non-numeric or missing amount
// cells become 0, missing text becomes the empty string and unparsable
// dates become the zero time. Malformed cells are coerced, never
// rejected.
package rowcodec

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contable-ledger/internal/domain/journal"
)

// DateLayout is the wire format of the Fecha column.
const DateLayout = "2006-01-02"

// NumColumns is the full row width including the entry ID column.
const NumColumns = 11

// Header returns the column titles in wire order.
func Header() []string {
	return []string{
		"Fecha", "Documento", "Tercero", "Cuenta", "Descripcion",
		"Debito", "Credito", "Centro_Costo", "Unidad_Negocio",
		"Usuario_Registro", "ID_Asiento",
	}
}

// ToStrings encodes a record as a CSV row. Amounts are written with two
// decimal places.
func ToStrings(rec *journal.LedgerRecord) []string {
	return []string{
		formatDate(rec.Date),
		rec.Document,
		rec.Counterparty,
		rec.Account,
		rec.Description,
		rec.Debit.StringFixed(2),
		rec.Credit.StringFixed(2),
		rec.CostCenter,
		rec.BusinessUnit,
		rec.SubmittedBy,
		formatEntryID(rec.EntryID),
	}
}

// ToValues encodes a record as a spreadsheet row. Amounts are written
// as floats so the sheet treats them as numbers.
func ToValues(rec *journal.LedgerRecord) []interface{} {
	return []interface{}{
		formatDate(rec.Date),
		rec.Document,
		rec.Counterparty,
		rec.Account,
		rec.Description,
		rec.Debit.InexactFloat64(),
		rec.Credit.InexactFloat64(),
		rec.CostCenter,
		rec.BusinessUnit,
		rec.SubmittedBy,
		formatEntryID(rec.EntryID),
	}
}

// FromStrings decodes a CSV row, applying the field coercion rules.
// Rows shorter than the legacy layout are padded with empty cells.
func FromStrings(row []string) *journal.LedgerRecord {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	return &journal.LedgerRecord{
		Date:         CoerceDate(cell(0)),
		Document:     cell(1),
		Counterparty: cell(2),
		Account:      cell(3),
		Description:  cell(4),
		Debit:        CoerceAmount(cell(5)),
		Credit:       CoerceAmount(cell(6)),
		CostCenter:   cell(7),
		BusinessUnit: cell(8),
		SubmittedBy:  cell(9),
		EntryID:      coerceEntryID(cell(10)),
	}
}

// FromValues decodes a spreadsheet row, stringifying each cell first.
func FromValues(row []interface{}) *journal.LedgerRecord {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = stringifyCell(v)
	}
	return FromStrings(cells)
}

// CoerceAmount converts a raw numeric cell to a decimal amount. Empty
// or unparsable cells coerce to zero.
func CoerceAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CoerceDate converts a raw date cell, falling back to the zero time.
func CoerceDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{DateLayout, "02/01/2006", time.RFC3339} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func coerceEntryID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func formatDate(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(DateLayout)
}

func formatEntryID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func stringifyCell(v interface{}) string {
	switch cell := v.(type) {
	case nil:
		return ""
	case string:
		return cell
	case float64:
		return strconv.FormatFloat(cell, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(cell)
	default:
		return ""
	}
}
