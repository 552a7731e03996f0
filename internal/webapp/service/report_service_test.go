package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contable-ledger/internal/domain/journal"
)

func TestReportService(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	records := []*journal.LedgerRecord{
		{Account: "1105", Document: "FAC-042", Debit: decimal.NewFromInt(1190), BusinessUnit: "Principal"},
		{Account: "4135", Document: "FAC-042", Credit: decimal.NewFromInt(1000), BusinessUnit: "Principal"},
		{Account: "2408", Document: "FAC-042", Credit: decimal.NewFromInt(190), BusinessUnit: "Principal"},
	}

	t.Run("RecordsAppliesQuery", func(t *testing.T) {
		mockStore := new(MockRecordStore)
		mockStore.On("LoadAll", mock.Anything).Return(records, nil).Once()

		svc := NewReportService(logger, mockStore)
		matched, err := svc.Records(ctx, "4135")

		require.NoError(t, err)
		require.Len(t, matched, 1)
		assert.Equal(t, "4135", matched[0].Account)
	})

	t.Run("TotalsCountMatchingRows", func(t *testing.T) {
		mockStore := new(MockRecordStore)
		mockStore.On("LoadAll", mock.Anything).Return(records, nil).Once()

		svc := NewReportService(logger, mockStore)
		summary, count, err := svc.Totals(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.True(t, decimal.NewFromInt(1190).Equal(summary.Debit))
		assert.True(t, decimal.NewFromInt(1190).Equal(summary.Credit))
		assert.True(t, summary.Difference.IsZero())
	})

	t.Run("TaxesCoverOnlyTaxAccounts", func(t *testing.T) {
		mockStore := new(MockRecordStore)
		mockStore.On("LoadAll", mock.Anything).Return(records, nil).Once()

		svc := NewReportService(logger, mockStore)
		groups, err := svc.Taxes(ctx)

		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "2408", groups[0].Key)
		assert.True(t, decimal.NewFromInt(190).Equal(groups[0].Net))
	})

	t.Run("ProfitAndLossPerUnit", func(t *testing.T) {
		mockStore := new(MockRecordStore)
		mockStore.On("LoadAll", mock.Anything).Return(records, nil).Once()

		svc := NewReportService(logger, mockStore)
		results, err := svc.ProfitAndLoss(ctx)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Principal", results[0].BusinessUnit)
		assert.True(t, decimal.NewFromInt(1000).Equal(results[0].Income))
		assert.True(t, results[0].Expense.IsZero())
	})
}
