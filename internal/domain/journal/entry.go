// Package journal contains the double-entry bookkeeping domain model:
// draft journal entries, the balance validator, and the flattened ledger
// records that get persisted to the configured store.
package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerLine is one row of a draft journal entry. Exactly one of
// Debit/Credit is expected to carry a non-zero amount; lines where both
// are zero are treated as blank placeholder rows and never persisted.
type LedgerLine struct {
	Account      string          `json:"account"`
	Detail       string          `json:"detail,omitempty"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenter   string          `json:"cost_center,omitempty"`
	BusinessUnit string          `json:"business_unit,omitempty"`
}

// IsBlank reports whether the line has no debit or credit activity.
func (l LedgerLine) IsBlank() bool {
	return l.Debit.IsZero() && l.Credit.IsZero()
}

// JournalEntry is the unit of atomic submission. It exists only
// transiently in a session draft; posting expands it into one
// LedgerRecord per active line.
type JournalEntry struct {
	Date         time.Time    `json:"date"`
	Document     string       `json:"document"`
	Counterparty string       `json:"counterparty"`
	Description  string       `json:"description"`
	Lines        []LedgerLine `json:"lines"`
}

// ActiveLines returns the lines with debit or credit activity,
// preserving insertion order.
func (e *JournalEntry) ActiveLines() []LedgerLine {
	active := make([]LedgerLine, 0, len(e.Lines))
	for _, line := range e.Lines {
		if !line.IsBlank() {
			active = append(active, line)
		}
	}
	return active
}

// Totals computes the debit and credit sums over the entry's active
// lines. Amounts were already coerced at the transport boundary, so the
// computation never fails.
func (e *JournalEntry) Totals() (debit, credit decimal.Decimal) {
	for _, line := range e.Lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// Expand flattens the entry into persistable records, one per active
// line. Every record carries the entry metadata, the submitting actor
// and the shared entry ID. A line without its own detail falls back to
// the entry's global description.
func (e *JournalEntry) Expand(entryID uuid.UUID, submittedBy string) []*LedgerRecord {
	active := e.ActiveLines()
	records := make([]*LedgerRecord, 0, len(active))
	for _, line := range active {
		detail := line.Detail
		if detail == "" {
			detail = e.Description
		}
		records = append(records, &LedgerRecord{
			EntryID:      entryID,
			Date:         e.Date,
			Document:     e.Document,
			Counterparty: e.Counterparty,
			Account:      line.Account,
			Description:  detail,
			Debit:        line.Debit,
			Credit:       line.Credit,
			CostCenter:   line.CostCenter,
			BusinessUnit: line.BusinessUnit,
			SubmittedBy:  submittedBy,
		})
	}
	return records
}
