package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/contable-ledger/internal/data/rowcodec"
	"github.com/contable-ledger/internal/domain/journal"
	"github.com/contable-ledger/internal/webapp/service"
)

// ReportHandler serves the read-side views over the ledger. A store
// that cannot be read yields empty views, never an error page.
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Records lists the stored ledger rows, filtered by the q parameter as
// a case-insensitive substring over every textual field
func (h *ReportHandler) Records(c *gin.Context) {
	query := c.Query("q")

	records, err := h.reportService.Records(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Failed to load records, serving empty view", "error", err)
		records = nil
	}

	responses := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}
	RespondWithCount(c, responses, len(responses))
}

// Totals sums debits and credits over the matching rows
func (h *ReportHandler) Totals(c *gin.Context) {
	query := c.Query("q")

	summary, count, err := h.reportService.Totals(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Failed to compute totals, serving empty view", "error", err)
		count = 0
	}
	RespondWithCount(c, summary, count)
}

// ByAccount groups totals per account code
func (h *ReportHandler) ByAccount(c *gin.Context) {
	groups, err := h.reportService.ByAccount(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to group by account, serving empty view", "error", err)
		groups = nil
	}
	RespondOK(c, groups)
}

// ByBusinessUnit groups totals per business unit
func (h *ReportHandler) ByBusinessUnit(c *gin.Context) {
	groups, err := h.reportService.ByBusinessUnit(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to group by business unit, serving empty view", "error", err)
		groups = nil
	}
	RespondOK(c, groups)
}

// Taxes summarizes the tax-liability accounts
func (h *ReportHandler) Taxes(c *gin.Context) {
	groups, err := h.reportService.Taxes(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to summarize taxes, serving empty view", "error", err)
		groups = nil
	}
	RespondOK(c, groups)
}

// ProfitAndLoss reports income, expense and net per business unit
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	results, err := h.reportService.ProfitAndLoss(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute profit and loss, serving empty view", "error", err)
		results = nil
	}
	RespondOK(c, results)
}

// mapRecordToResponse maps a stored ledger row to its API view
func mapRecordToResponse(rec *journal.LedgerRecord) RecordResponse {
	response := RecordResponse{
		Document:     rec.Document,
		Counterparty: rec.Counterparty,
		Account:      rec.Account,
		Description:  rec.Description,
		Debit:        rec.Debit.StringFixed(2),
		Credit:       rec.Credit.StringFixed(2),
		CostCenter:   rec.CostCenter,
		BusinessUnit: rec.BusinessUnit,
		SubmittedBy:  rec.SubmittedBy,
	}
	if rec.EntryID != uuid.Nil {
		response.EntryID = rec.EntryID.String()
	}
	if !rec.Date.IsZero() {
		response.Date = rec.Date.Format(rowcodec.DateLayout)
	}
	return response
}
