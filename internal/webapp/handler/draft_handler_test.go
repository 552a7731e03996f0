package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contable-ledger/internal/domain/journal"
	"github.com/contable-ledger/internal/webapp/middleware"
	"github.com/contable-ledger/internal/webapp/service"
)

// MockJournalService mocks service.JournalService
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) Submit(ctx context.Context, entry *journal.JournalEntry, submittedBy string) (*service.PostReceipt, error) {
	args := m.Called(ctx, entry, submittedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostReceipt), args.Error(1)
}

// setupDraftRouter wires the draft routes behind a stub session
// injector so the handler sees an authenticated actor.
func setupDraftRouter(handler *DraftHandler, session *service.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.SessionKey, session)
		c.Next()
	})
	r.GET("/draft", handler.Get)
	r.PUT("/draft", handler.SetHeader)
	r.POST("/draft/lines", handler.AddLine)
	r.DELETE("/draft/lines/:index", handler.RemoveLine)
	r.POST("/entries", handler.Submit)
	return r
}

func draftFromBody(t *testing.T, body []byte) DraftResponse {
	t.Helper()
	var response Response
	require.NoError(t, json.Unmarshal(body, &response))
	require.NotNil(t, response.Data)

	dataBytes, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var draft DraftResponse
	require.NoError(t, json.Unmarshal(dataBytes, &draft))
	return draft
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		jsonBody, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBody)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return doRequest(r, req)
}

func doRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestDraftHandler_EditCycle(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	session := &service.Session{Username: "ana"}
	handler := NewDraftHandler(logger, new(MockJournalService))
	router := setupDraftRouter(handler, session)

	rr := doJSON(router, http.MethodPut, "/draft", EntryHeaderRequest{
		Date:     "2024-03-15",
		Document: "FAC-042",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(router, http.MethodPost, "/draft/lines", LineRequest{
		Account: "1105", Debit: "1190",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	draft := draftFromBody(t, rr.Body.Bytes())
	assert.False(t, draft.Postable)
	assert.NotEmpty(t, draft.ValidationMessage)

	rr = doJSON(router, http.MethodPost, "/draft/lines", LineRequest{
		Account: "4135", Credit: "1000",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(router, http.MethodPost, "/draft/lines", LineRequest{
		Account: "2408", Credit: "190",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	draft = draftFromBody(t, rr.Body.Bytes())
	assert.True(t, draft.Postable)
	assert.Equal(t, "1190.00", draft.TotalDebit)
	assert.Equal(t, "1190.00", draft.TotalCredit)
	assert.Equal(t, "0.00", draft.Difference)
	assert.Equal(t, "2024-03-15", draft.Date)

	// removing a line flips the verdict back
	rr = doJSON(router, http.MethodDelete, "/draft/lines/2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	draft = draftFromBody(t, rr.Body.Bytes())
	assert.False(t, draft.Postable)
	require.Len(t, draft.Lines, 2)
}

func TestDraftHandler_AddLine_CoercesMalformedAmounts(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	session := &service.Session{Username: "ana"}
	handler := NewDraftHandler(logger, new(MockJournalService))
	router := setupDraftRouter(handler, session)

	rr := doJSON(router, http.MethodPost, "/draft/lines", LineRequest{
		Account: "1105", Debit: "not-a-number", Credit: "",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	draft := draftFromBody(t, rr.Body.Bytes())
	require.Len(t, draft.Lines, 1)
	assert.Equal(t, "0.00", draft.Lines[0].Debit)
	assert.Equal(t, "0.00", draft.Lines[0].Credit)
}

func TestDraftHandler_RemoveLine_Errors(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	session := &service.Session{Username: "ana"}
	handler := NewDraftHandler(logger, new(MockJournalService))
	router := setupDraftRouter(handler, session)

	rr := doJSON(router, http.MethodDelete, "/draft/lines/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(router, http.MethodDelete, "/draft/lines/0", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDraftHandler_Submit(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("SuccessClearsDraft", func(t *testing.T) {
		session := &service.Session{Username: "ana"}
		session.AddLine(journal.LedgerLine{Account: "1105", Debit: decimal.NewFromInt(1000)})
		session.AddLine(journal.LedgerLine{Account: "4135", Credit: decimal.NewFromInt(1000)})

		entryID := uuid.New()
		mockService := new(MockJournalService)
		mockService.On("Submit", mock.Anything, mock.Anything, "ana").Return(&service.PostReceipt{
			EntryID:     entryID,
			Lines:       2,
			TotalDebit:  decimal.NewFromInt(1000),
			TotalCredit: decimal.NewFromInt(1000),
		}, nil).Once()

		handler := NewDraftHandler(logger, mockService)
		router := setupDraftRouter(handler, session)

		rr := doJSON(router, http.MethodPost, "/entries", nil)
		require.Equal(t, http.StatusCreated, rr.Code)

		var response Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		dataBytes, _ := json.Marshal(response.Data)
		var receipt PostReceiptResponse
		require.NoError(t, json.Unmarshal(dataBytes, &receipt))
		assert.Equal(t, entryID.String(), receipt.EntryID)
		assert.Equal(t, "1000.00", receipt.TotalDebit)

		assert.Empty(t, session.Draft().Lines)
		mockService.AssertExpectations(t)
	})

	t.Run("ValidationFailureKeepsDraft", func(t *testing.T) {
		session := &service.Session{Username: "ana"}
		session.AddLine(journal.LedgerLine{Account: "1105", Debit: decimal.NewFromInt(1000)})

		mockService := new(MockJournalService)
		mockService.On("Submit", mock.Anything, mock.Anything, "ana").
			Return(nil, journal.ErrUnbalancedEntry{Debit: decimal.NewFromInt(1000)}).Once()

		handler := NewDraftHandler(logger, mockService)
		router := setupDraftRouter(handler, session)

		rr := doJSON(router, http.MethodPost, "/entries", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Len(t, session.Draft().Lines, 1)
	})

	t.Run("StoreFailureIsBadGateway", func(t *testing.T) {
		session := &service.Session{Username: "ana"}
		session.AddLine(journal.LedgerLine{Account: "1105", Debit: decimal.NewFromInt(1000)})
		session.AddLine(journal.LedgerLine{Account: "4135", Credit: decimal.NewFromInt(1000)})

		mockService := new(MockJournalService)
		mockService.On("Submit", mock.Anything, mock.Anything, "ana").
			Return(nil, errors.New("worksheet unreachable")).Once()

		handler := NewDraftHandler(logger, mockService)
		router := setupDraftRouter(handler, session)

		rr := doJSON(router, http.MethodPost, "/entries", nil)
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Len(t, session.Draft().Lines, 2)
	})
}
