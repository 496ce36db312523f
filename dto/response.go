package dto

import "errors"

// Custom errors
var (
	ErrCaseNameRequired  = errors.New("case name is required")
	ErrNoTransactions    = errors.New("no transactions uploaded")
	ErrNoFiles           = errors.New("no files provided")
	ErrEmptyDraft        = errors.New("no working capital figures submitted or extracted")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// UploadSummary reports the outcome of a banking statement upload.
type UploadSummary struct {
	Files             int      `json:"files"`
	Added             int      `json:"added"`
	TotalTransactions int      `json:"total_transactions"`
	Warnings          []string `json:"warnings"`
}

// DashboardResponse is everything the executive dashboard shows.
type DashboardResponse struct {
	WC       *WorkingCapitalResult `json:"wc"`
	Agri     *AgricultureResult    `json:"agri"`
	Banking  *BankingResult        `json:"banking"`
	Decision CompositeDecision     `json:"decision"`

	AgriRepaymentNote string `json:"agri_repayment_note,omitempty"`
}
