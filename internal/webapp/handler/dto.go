package handler

// LoginRequest carries a credential pair
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token of a fresh session
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expires_at"`
}

// EntryHeaderRequest sets the shared metadata of the draft entry.
// The date travels as text and is coerced like any stored cell; a
// malformed date becomes the zero value rather than an error.
type EntryHeaderRequest struct {
	Date         string `json:"date"`
	Document     string `json:"document"`
	Counterparty string `json:"counterparty"`
	Description  string `json:"description"`
}

// LineRequest appends one line to the draft. Amounts travel as text
// and malformed values coerce to zero, mirroring how stored rows are
// read back.
type LineRequest struct {
	Account      string `json:"account" binding:"required"`
	Detail       string `json:"detail"`
	Debit        string `json:"debit"`
	Credit       string `json:"credit"`
	CostCenter   string `json:"cost_center"`
	BusinessUnit string `json:"business_unit"`
}

// LineResponse represents one draft line in API responses
type LineResponse struct {
	Account      string `json:"account"`
	Detail       string `json:"detail,omitempty"`
	Debit        string `json:"debit"`
	Credit       string `json:"credit"`
	CostCenter   string `json:"cost_center,omitempty"`
	BusinessUnit string `json:"business_unit,omitempty"`
}

// DraftResponse is the full draft view: header, lines, running totals
// and the current validation verdict
type DraftResponse struct {
	Date              string         `json:"date"`
	Document          string         `json:"document"`
	Counterparty      string         `json:"counterparty"`
	Description       string         `json:"description"`
	Lines             []LineResponse `json:"lines"`
	TotalDebit        string         `json:"total_debit"`
	TotalCredit       string         `json:"total_credit"`
	Difference        string         `json:"difference"`
	Postable          bool           `json:"postable"`
	ValidationMessage string         `json:"validation_message,omitempty"`
}

// PostReceiptResponse confirms an appended entry
type PostReceiptResponse struct {
	EntryID     string `json:"entry_id"`
	Lines       int    `json:"lines"`
	TotalDebit  string `json:"total_debit"`
	TotalCredit string `json:"total_credit"`
}

// RecordResponse represents one stored ledger row in API responses
type RecordResponse struct {
	EntryID      string `json:"entry_id,omitempty"`
	Date         string `json:"date"`
	Document     string `json:"document"`
	Counterparty string `json:"counterparty"`
	Account      string `json:"account"`
	Description  string `json:"description"`
	Debit        string `json:"debit"`
	Credit       string `json:"credit"`
	CostCenter   string `json:"cost_center"`
	BusinessUnit string `json:"business_unit"`
	SubmittedBy  string `json:"submitted_by"`
}
