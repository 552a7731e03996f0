package journal

import "context"

// RecordStore is the append-only persistence contract shared by every
// backend (Google Sheets, CSV file, PostgreSQL, MongoDB).
//
// Append persists all records of one entry as a single batch: either
// every record lands or the whole call reports failure. Nothing is
// retried automatically.
//
// LoadAll reads the entire store. An empty store yields an empty slice,
// and unreadable store state degrades to an empty slice rather than
// propagating an error to the interactive loop.
type RecordStore interface {
	Append(ctx context.Context, records []*LedgerRecord) error
	LoadAll(ctx context.Context) ([]*LedgerRecord, error)
}
