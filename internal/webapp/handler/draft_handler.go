package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/contable-ledger/internal/data/rowcodec"
	"github.com/contable-ledger/internal/domain/journal"
	"github.com/contable-ledger/internal/webapp/middleware"
	"github.com/contable-ledger/internal/webapp/service"
)

// DraftHandler edits the session draft and posts it to the store
type DraftHandler struct {
	journalService service.JournalService
	logger         *slog.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(logger *slog.Logger, journalService service.JournalService) *DraftHandler {
	return &DraftHandler{
		journalService: journalService,
		logger:         logger,
	}
}

// Get returns the draft together with running totals and the current
// validation verdict
func (h *DraftHandler) Get(c *gin.Context) {
	session := middleware.GetSession(c)
	RespondOK(c, mapDraftToResponse(session.Draft()))
}

// SetHeader replaces the shared entry metadata of the draft
func (h *DraftHandler) SetHeader(c *gin.Context) {
	var req EntryHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid draft header body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session := middleware.GetSession(c)
	session.SetHeader(rowcodec.CoerceDate(req.Date), req.Document, req.Counterparty, req.Description)
	RespondOK(c, mapDraftToResponse(session.Draft()))
}

// AddLine appends one line to the draft. Malformed amounts coerce to
// zero instead of rejecting the request; a line with no activity stays
// in the draft but is never persisted.
func (h *DraftHandler) AddLine(c *gin.Context) {
	var req LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid draft line body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	line := journal.LedgerLine{
		Account:      req.Account,
		Detail:       req.Detail,
		Debit:        rowcodec.CoerceAmount(req.Debit),
		Credit:       rowcodec.CoerceAmount(req.Credit),
		CostCenter:   req.CostCenter,
		BusinessUnit: req.BusinessUnit,
	}

	session := middleware.GetSession(c)
	session.AddLine(line)
	RespondOK(c, mapDraftToResponse(session.Draft()))
}

// RemoveLine deletes the draft line at the given position
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	indexParam := c.Param("index")
	index, err := strconv.Atoi(indexParam)
	if err != nil {
		RespondBadRequest(c, "Invalid line index")
		return
	}

	session := middleware.GetSession(c)
	if !session.RemoveLine(index) {
		RespondNotFound(c, "No draft line at index "+indexParam)
		return
	}
	RespondOK(c, mapDraftToResponse(session.Draft()))
}

// Submit posts the draft as one atomic entry. Validation failures come
// back as 422 with an inline message and leave the draft untouched; a
// store failure comes back as 502 with the draft likewise preserved so
// the user can retry without retyping.
func (h *DraftHandler) Submit(c *gin.Context) {
	session := middleware.GetSession(c)
	draft := session.Draft()

	receipt, err := h.journalService.Submit(c.Request.Context(), &draft, session.Username)
	if err != nil {
		if errors.Is(err, journal.ErrUnbalancedEntry{}) || errors.Is(err, journal.ErrEmptyEntry{}) {
			RespondUnprocessable(c, err.Error())
			return
		}
		RespondBadGateway(c, "")
		return
	}

	session.ClearDraft()
	RespondCreated(c, PostReceiptResponse{
		EntryID:     receipt.EntryID.String(),
		Lines:       receipt.Lines,
		TotalDebit:  receipt.TotalDebit.StringFixed(2),
		TotalCredit: receipt.TotalCredit.StringFixed(2),
	})
}

// mapDraftToResponse maps a draft snapshot to its API view
func mapDraftToResponse(draft journal.JournalEntry) DraftResponse {
	lines := make([]LineResponse, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		lines = append(lines, LineResponse{
			Account:      line.Account,
			Detail:       line.Detail,
			Debit:        line.Debit.StringFixed(2),
			Credit:       line.Credit.StringFixed(2),
			CostCenter:   line.CostCenter,
			BusinessUnit: line.BusinessUnit,
		})
	}

	debit, credit := draft.Totals()
	response := DraftResponse{
		Document:     draft.Document,
		Counterparty: draft.Counterparty,
		Description:  draft.Description,
		Lines:        lines,
		TotalDebit:   debit.StringFixed(2),
		TotalCredit:  credit.StringFixed(2),
		Difference:   debit.Sub(credit).StringFixed(2),
	}
	if !draft.Date.IsZero() {
		response.Date = draft.Date.Format(rowcodec.DateLayout)
	}

	if err := journal.Validate(&draft); err != nil {
		response.ValidationMessage = err.Error()
	} else {
		response.Postable = true
	}
	return response
}
