// Package migrator copies a full ledger from one record store to
// another, preserving entry grouping: all records sharing an entry key
// travel as one append, so the target never holds a partial entry.
package migrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/contable-ledger/internal/domain/journal"
)

// Migrator moves entries between stores over a bounded worker pool.
type Migrator struct {
	source journal.RecordStore
	target journal.RecordStore
	pool   *ants.Pool
	logger *slog.Logger
}

// Result summarizes one migration run.
type Result struct {
	Entries int
	Records int
	Failed  int
}

// New creates a migrator with the given worker pool size.
func New(logger *slog.Logger, source, target journal.RecordStore, poolSize int) (*Migrator, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Migrator{
		source: source,
		target: target,
		pool:   pool,
		logger: logger,
	}, nil
}

// Run loads the full source ledger, regroups it into entries and
// appends each entry to the target concurrently. Entries that fail to
// append are counted and logged but do not stop the rest of the run.
func (m *Migrator) Run(ctx context.Context) (*Result, error) {
	records, err := m.source.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load source ledger: %w", err)
	}

	groups := groupByEntry(records)
	m.logger.Info("Loaded source ledger", "records", len(records), "entries", len(groups))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result = Result{Entries: len(groups), Records: len(records)}
	)

	for _, group := range groups {
		group := group
		wg.Add(1)
		submitErr := m.pool.Submit(func() {
			defer wg.Done()
			if err := m.target.Append(ctx, group); err != nil {
				m.logger.Error("Failed to migrate entry", "key", group[0].GroupKey(), "records", len(group), "error", err)
				mu.Lock()
				result.Failed++
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			m.logger.Error("Failed to submit entry to worker pool", "error", submitErr)
			mu.Lock()
			result.Failed++
			mu.Unlock()
		}
	}

	wg.Wait()

	m.logger.Info("Migration finished",
		"entries", result.Entries,
		"records", result.Records,
		"failed", result.Failed,
	)
	return &result, nil
}

// Shutdown releases the worker pool.
func (m *Migrator) Shutdown() {
	m.pool.Release()
}

// groupByEntry buckets records by their entry key, keeping the order
// of first appearance so migrated ledgers read in the same sequence.
func groupByEntry(records []*journal.LedgerRecord) [][]*journal.LedgerRecord {
	index := make(map[string]int)
	var groups [][]*journal.LedgerRecord
	for _, rec := range records {
		key := rec.GroupKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], rec)
	}
	return groups
}
