// Package csvfile implements the record store on top of a local CSV
// file, behaviorally interchangeable with the spreadsheet backend.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/contable-ledger/internal/data/rowcodec"
	"github.com/contable-ledger/internal/domain/journal"
)

// RecordStore appends ledger records to a CSV file and reads the whole
// file back for reporting.
type RecordStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ journal.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates a CSV-backed record store. The file is created
// with a header row on first append; a missing file reads as empty.
func NewRecordStore(logger *slog.Logger, path string) *RecordStore {
	return &RecordStore{
		path:   path,
		logger: logger,
	}
}

// Append writes all records of one entry in a single file write so a
// partial entry is never left behind on failure.
func (s *RecordStore) Append(_ context.Context, records []*journal.LedgerRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader, err := s.needsHeader()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if writeHeader {
		if err := w.Write(rowcodec.Header()); err != nil {
			return fmt.Errorf("failed to encode header row: %w", err)
		}
	}
	for _, rec := range records {
		if err := w.Write(rowcodec.ToStrings(rec)); err != nil {
			return fmt.Errorf("failed to encode ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode ledger rows: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		s.logger.Error("Failed to open ledger file", "path", s.path, "error", err)
		return fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		s.logger.Error("Failed to append ledger rows", "path", s.path, "error", err)
		return fmt.Errorf("failed to append ledger rows: %w", err)
	}

	return nil
}

// LoadAll reads every record in the file. A missing file or unreadable
// content yields an empty result rather than an error; individually
// malformed rows are skipped.
func (s *RecordStore) LoadAll(_ context.Context) ([]*journal.LedgerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Ledger file unreadable, returning empty ledger", "path", s.path, "error", err)
		}
		return []*journal.LedgerRecord{}, nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // legacy files may carry fewer columns

	records := make([]*journal.LedgerRecord, 0)
	first := true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.logger.Warn("Skipping malformed ledger row", "path", s.path, "error", err)
			continue
		}
		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}
		records = append(records, rowcodec.FromStrings(row))
	}

	return records, nil
}

// needsHeader reports whether the file is absent or empty.
func (s *RecordStore) needsHeader() (bool, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat ledger file: %w", err)
	}
	return info.Size() == 0, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && row[0] == "Fecha"
}
