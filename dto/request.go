package dto

// WorkingCapitalRequest is submitted to the backend's working-capital endpoint.
type WorkingCapitalRequest struct {
	CurrentAssets      float64 `json:"current_assets"`
	CurrentLiabilities float64 `json:"current_liabilities"`
	Inventory          float64 `json:"inventory"`
	Receivables        float64 `json:"receivables"`
	Payables           float64 `json:"payables"`
	AnnualSales        float64 `json:"annual_sales"`
	COGS               float64 `json:"cogs"`
	BankCredit         float64 `json:"bank_credit"`
}

// AgricultureRequest is submitted to the backend's agriculture endpoint.
type AgricultureRequest struct {
	DocumentedIncome          float64 `json:"documented_income"`
	Tax                       float64 `json:"tax"`
	UndocumentedIncomeMonthly float64 `json:"undocumented_income_monthly"`
	EMIMonthly                float64 `json:"emi_monthly"`
}

// BankingAnalyzeRequest is submitted to the backend's banking endpoint.
type BankingAnalyzeRequest struct {
	Transactions []Transaction `json:"transactions"`
	MonthsCount  int           `json:"months_count"`
}

// AnalyzeBankingInput is what the operator posts to trigger banking analysis.
type AnalyzeBankingInput struct {
	MonthsCount int `json:"months_count"`
}

// SaveCaseRequest names the dashboard snapshot to persist.
type SaveCaseRequest struct {
	Name string `json:"name"`
}
