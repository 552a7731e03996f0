package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contable-ledger/internal/domain/journal"
	"github.com/contable-ledger/internal/platform/messaging/producers"
)

// PostReceipt describes an entry that was appended to the store.
type PostReceipt struct {
	EntryID     uuid.UUID
	Lines       int
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// JournalServiceImpl implements the JournalService interface
type JournalServiceImpl struct {
	store    journal.RecordStore
	producer producers.EventPublisher // nil when the event stream is disabled
	logger   *slog.Logger
}

// NewJournalService creates a new journal service. The producer may be
// nil; posting then skips event publication entirely.
func NewJournalService(logger *slog.Logger, store journal.RecordStore, producer producers.EventPublisher) JournalService {
	return &JournalServiceImpl{
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

// Submit validates the entry and appends its expansion as one batch.
// Validation runs against the entry as given; nothing touches the store
// unless the entry is postable.
func (s *JournalServiceImpl) Submit(ctx context.Context, entry *journal.JournalEntry, submittedBy string) (*PostReceipt, error) {
	if err := journal.Validate(entry); err != nil {
		s.logger.Info("Rejected unpostable entry",
			"document", entry.Document,
			"submitted_by", submittedBy,
			"reason", err.Error(),
		)
		return nil, err
	}

	entryID := uuid.New()
	records := entry.Expand(entryID, submittedBy)

	if err := s.store.Append(ctx, records); err != nil {
		s.logger.Error("Failed to append entry to store",
			"entry_id", entryID,
			"document", entry.Document,
			"lines", len(records),
			"error", err,
		)
		return nil, err
	}

	debit, credit := entry.Totals()
	s.logger.Info("Entry posted",
		"entry_id", entryID,
		"document", entry.Document,
		"lines", len(records),
		"total_debit", debit.StringFixed(2),
		"submitted_by", submittedBy,
	)

	// Best effort: a broker outage must not fail an already persisted entry.
	if s.producer != nil {
		event := producers.NewEntryPostedEvent(records)
		if err := s.producer.Publish(ctx, entryID.String(), event); err != nil {
			s.logger.Warn("Failed to publish entry posted event", "entry_id", entryID, "error", err)
		}
	}

	return &PostReceipt{
		EntryID:     entryID,
		Lines:       len(records),
		TotalDebit:  debit,
		TotalCredit: credit,
	}, nil
}
