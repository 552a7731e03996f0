package service

import (
	"context"

	"github.com/contable-ledger/internal/domain/journal"
	"github.com/contable-ledger/internal/domain/report"
)

// SessionService manages authenticated sessions and the draft entry
// each session carries.
type SessionService interface {
	// Login validates the credentials and opens a new session.
	// Returns ErrInvalidCredentials when the pair is rejected.
	Login(username, password string) (*Session, error)

	// Get resolves a bearer token to its live session. Expired
	// sessions are evicted and reported as absent.
	Get(token string) (*Session, bool)

	// Logout closes the session. Unknown tokens are a no-op.
	Logout(token string)
}

// JournalService posts draft entries to the configured record store.
type JournalService interface {
	// Submit validates the entry, expands it into ledger records and
	// appends them atomically. Returns a validation error from the
	// journal package when the entry is not postable; any other error
	// means the store rejected the append and nothing was persisted.
	Submit(ctx context.Context, entry *journal.JournalEntry, submittedBy string) (*PostReceipt, error)
}

// ReportService computes read-side views over the full ledger. Store
// read failures degrade to empty results inside the stores, so these
// methods fail only on unexpected conditions.
type ReportService interface {
	// Records returns the ledger rows matching the query, newest last.
	Records(ctx context.Context, query string) ([]*journal.LedgerRecord, error)

	// Totals sums debits and credits over the matching rows and
	// reports how many rows matched.
	Totals(ctx context.Context, query string) (report.Summary, int, error)

	// ByAccount groups debit/credit/net per account code.
	ByAccount(ctx context.Context) ([]report.GroupTotal, error)

	// ByBusinessUnit groups debit/credit/net per business unit.
	ByBusinessUnit(ctx context.Context) ([]report.GroupTotal, error)

	// Taxes summarizes the tax-liability accounts.
	Taxes(ctx context.Context) ([]report.GroupTotal, error)

	// ProfitAndLoss computes income, expense and net per business unit.
	ProfitAndLoss(ctx context.Context) ([]report.UnitResult, error)
}
