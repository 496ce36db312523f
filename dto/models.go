package dto

import "time"

// RawRow is one line of a parsed document, cell by cell.
type RawRow []string

type FieldKey string

const (
	FieldCurrentAssets      FieldKey = "current_assets"
	FieldCurrentLiabilities FieldKey = "current_liabilities"
	FieldInventory          FieldKey = "inventory"
	FieldReceivables        FieldKey = "receivables"
	FieldPayables           FieldKey = "payables"
	FieldAnnualSales        FieldKey = "annual_sales"
	FieldCOGS               FieldKey = "cogs"
	FieldBankCredit         FieldKey = "bank_credit"
)

// FieldKeys lists every working-capital field in dictionary order.
var FieldKeys = []FieldKey{
	FieldCurrentAssets,
	FieldCurrentLiabilities,
	FieldInventory,
	FieldReceivables,
	FieldPayables,
	FieldAnnualSales,
	FieldCOGS,
	FieldBankCredit,
}

// ExtractedFields holds the values found in a financial document.
// Keys that were never matched are absent.
type ExtractedFields map[FieldKey]float64

// Merge copies every key of other into f, overwriting existing values.
func (f ExtractedFields) Merge(other ExtractedFields) {
	for k, v := range other {
		f[k] = v
	}
}

// Request builds a complete working-capital request, defaulting absent keys to 0.
func (f ExtractedFields) Request() WorkingCapitalRequest {
	return WorkingCapitalRequest{
		CurrentAssets:      f[FieldCurrentAssets],
		CurrentLiabilities: f[FieldCurrentLiabilities],
		Inventory:          f[FieldInventory],
		Receivables:        f[FieldReceivables],
		Payables:           f[FieldPayables],
		AnnualSales:        f[FieldAnnualSales],
		COGS:               f[FieldCOGS],
		BankCredit:         f[FieldBankCredit],
	}
}

// Transaction is a bank statement entry in the shape the scoring backend expects.
type Transaction struct {
	Date        string  `json:"date"`
	Credit      float64 `json:"credit"`
	Debit       float64 `json:"debit"`
	Description string  `json:"desc"`
	Account     string  `json:"account"`
}

// WorkingCapitalResult is returned by the backend for the working-capital module.
type WorkingCapitalResult struct {
	NWC            float64 `json:"nwc"`
	CurrentRatio   float64 `json:"current_ratio"`
	QuickRatio     float64 `json:"quick_ratio"`
	OperatingCycle float64 `json:"operating_cycle"`
	LiquidityScore float64 `json:"liquidity_score"`
}

// AgricultureResult is returned by the backend for the agriculture module.
type AgricultureResult struct {
	AdjustedDocumentedIncome   float64 `json:"adjusted_documented_income"`
	AdjustedUndocumentedIncome float64 `json:"adjusted_undocumented_income"`
	TotalAdjustedIncome        float64 `json:"total_adjusted_income"`
	DisposableIncome           float64 `json:"disposable_income"`
	LoanEligibility            float64 `json:"loan_eligibility"`
	AgriScore                  float64 `json:"agri_score"`
	EMIRatio                   float64 `json:"emi_ratio"`
	Status                     string  `json:"status"`
	RejectionReason            string  `json:"rejection_reason,omitempty"`
}

// AgriStatusRejected marks an agriculture application that must not be approved.
const AgriStatusRejected = "Rejected"

// Rejected reports whether the agriculture module vetoed the application.
func (r *AgricultureResult) Rejected() bool {
	return r != nil && r.Status == AgriStatusRejected
}

// RepaymentStressEMIRatio is the EMI-to-income percentage above which repayment is strained.
const RepaymentStressEMIRatio = 40

// RepaymentNote describes repayment capacity from the EMI ratio. It is empty when r is nil.
func (r *AgricultureResult) RepaymentNote() string {
	switch {
	case r == nil:
		return ""
	case r.EMIRatio > RepaymentStressEMIRatio:
		return "Moderate to high repayment stress."
	default:
		return "Healthy repayment capacity."
	}
}

type ConsolidatedBanking struct {
	AvgMonthlyCredit  float64 `json:"avg_monthly_credit"`
	AvgMonthlyDebit   float64 `json:"avg_monthly_debit"`
	NetMonthlySurplus float64 `json:"net_monthly_surplus"`
}

// BankingResult is returned by the backend for the banking hygiene module.
type BankingResult struct {
	HygieneScore     float64                   `json:"hygiene_score"`
	HygieneStatus    string                    `json:"hygiene_status"`
	Consolidated     ConsolidatedBanking       `json:"consolidated"`
	AccountSummary   map[string]map[string]any `json:"account_summary,omitempty"`
	MonthlyBreakdown map[string]map[string]any `json:"monthly_breakdown,omitempty"`
	BounceCount      int                       `json:"bounce_count"`
	FraudFlags       []string                  `json:"fraud_flags,omitempty"`
}

// CompositeDecision is the aggregated outcome of the three modules.
// MasterScore is nil when no module result is available.
type CompositeDecision struct {
	MasterScore  *float64 `json:"master_score"`
	DecisionText string   `json:"decision_text"`
}

// Case is an immutable snapshot of a dashboard decision.
type Case struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	CreatedAt    time.Time             `json:"created_at"`
	WC           *WorkingCapitalResult `json:"wc"`
	Agri         *AgricultureResult    `json:"agri"`
	Banking      *BankingResult        `json:"banking"`
	DecisionText string                `json:"decision_text"`
}
