package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerRecord is the persisted, flattened form of one ledger line plus
// its entry metadata and the identity of the submitting actor. Records
// are immutable once written; corrections happen as new entries.
//
// EntryID ties the N records of one submission back together. Legacy
// rows written before the column existed carry uuid.Nil and are grouped
// by (date, document) instead.
type LedgerRecord struct {
	EntryID      uuid.UUID       `json:"entry_id"`
	Date         time.Time       `json:"date"`
	Document     string          `json:"document"`
	Counterparty string          `json:"counterparty"`
	Account      string          `json:"account"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenter   string          `json:"cost_center"`
	BusinessUnit string          `json:"business_unit"`
	SubmittedBy  string          `json:"submitted_by"`
}

// GroupKey identifies the submission a record belongs to: the entry ID
// when present, otherwise the legacy (date, document) pair.
func (r *LedgerRecord) GroupKey() string {
	if r.EntryID != uuid.Nil {
		return r.EntryID.String()
	}
	return r.Date.Format("2006-01-02") + "|" + r.Document
}
