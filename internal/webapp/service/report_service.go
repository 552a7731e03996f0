package service

import (
	"context"
	"log/slog"

	"github.com/contable-ledger/internal/domain/journal"
	"github.com/contable-ledger/internal/domain/report"
)

// ReportServiceImpl implements the ReportService interface. Every call
// reloads the full ledger; the stores are the single source of truth
// and nothing is cached between requests.
type ReportServiceImpl struct {
	store  journal.RecordStore
	logger *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(logger *slog.Logger, store journal.RecordStore) ReportService {
	return &ReportServiceImpl{
		store:  store,
		logger: logger,
	}
}

// Records returns the ledger rows matching the query.
func (s *ReportServiceImpl) Records(ctx context.Context, query string) ([]*journal.LedgerRecord, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return report.Search(records, query), nil
}

// Totals sums debits and credits over the matching rows.
func (s *ReportServiceImpl) Totals(ctx context.Context, query string) (report.Summary, int, error) {
	records, err := s.Records(ctx, query)
	if err != nil {
		return report.Summary{}, 0, err
	}
	return report.Totals(records), len(records), nil
}

// ByAccount groups totals per account code.
func (s *ReportServiceImpl) ByAccount(ctx context.Context) ([]report.GroupTotal, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return report.GroupByAccount(records), nil
}

// ByBusinessUnit groups totals per business unit.
func (s *ReportServiceImpl) ByBusinessUnit(ctx context.Context) ([]report.GroupTotal, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return report.GroupByBusinessUnit(records), nil
}

// Taxes summarizes the tax-liability accounts.
func (s *ReportServiceImpl) Taxes(ctx context.Context) ([]report.GroupTotal, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return report.TaxSummary(records), nil
}

// ProfitAndLoss computes income, expense and net per business unit.
func (s *ReportServiceImpl) ProfitAndLoss(ctx context.Context) ([]report.UnitResult, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return report.ProfitAndLossByUnit(records), nil
}
