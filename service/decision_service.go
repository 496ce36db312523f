package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/store"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Module weights of the master score. Banking behaviour is the strongest
// repayment signal, agriculture income stability the weakest.
var (
	bankingWeight        = decimal.RequireFromString("0.40")
	workingCapitalWeight = decimal.RequireFromString("0.35")
	agricultureWeight    = decimal.RequireFromString("0.25")
)

const (
	lowRiskThreshold      = 80
	moderateRiskThreshold = 60
)

const (
	decisionHeader       = "Underwriting Summary:\n\n"
	insufficientDataText = "Insufficient data available."
	agriRejectionText    = "Application rejected due to agriculture rejection condition."
	lowRiskText          = "Low Risk – full approval recommended."
	moderateRiskText     = "Moderate Risk – controlled approval recommended."
	highRiskText         = "High Risk – credit exposure not recommended."
	unnamedCase          = "Unnamed Case"
)

// ComputeMasterScore combines the three module scores into a weighted composite
// rounded to two decimals. Missing modules contribute 0; it returns nil only
// when every module is missing.
func ComputeMasterScore(banking *dto.BankingResult, wc *dto.WorkingCapitalResult, agri *dto.AgricultureResult) *float64 {
	if banking == nil && wc == nil && agri == nil {
		return nil
	}

	var b, w, a float64
	if banking != nil {
		b = banking.HygieneScore
	}
	if wc != nil {
		w = wc.LiquidityScore
	}
	if agri != nil {
		a = agri.AgriScore
	}

	score := bankingWeight.Mul(decimal.NewFromFloat(b)).
		Add(workingCapitalWeight.Mul(decimal.NewFromFloat(w))).
		Add(agricultureWeight.Mul(decimal.NewFromFloat(a))).
		Round(2).
		InexactFloat64()
	return &score
}

// RiskTier classifies a master score.
func RiskTier(score float64) string {
	switch {
	case score >= lowRiskThreshold:
		return lowRiskText
	case score >= moderateRiskThreshold:
		return moderateRiskText
	default:
		return highRiskText
	}
}

// GenerateDecision writes the underwriting recommendation for the available module results.
// An agriculture rejection overrides the score.
func GenerateDecision(banking *dto.BankingResult, wc *dto.WorkingCapitalResult, agri *dto.AgricultureResult) string {
	var b strings.Builder
	b.WriteString(decisionHeader)

	masterScore := ComputeMasterScore(banking, wc, agri)
	if masterScore == nil {
		b.WriteString(insufficientDataText)
		return b.String()
	}

	if agri.Rejected() {
		b.WriteString(agriRejectionText)
		b.WriteString("\n")
		if agri.RejectionReason != "" {
			fmt.Fprintf(&b, "Reason: %s\n", agri.RejectionReason)
		}
		return b.String()
	}

	if banking != nil {
		status := banking.HygieneStatus
		if status == "" {
			status = "N/A"
		}
		fmt.Fprintf(&b, "Banking Hygiene Score: %s (%s).\n", formatNumber(banking.HygieneScore), status)
	}
	if wc != nil {
		fmt.Fprintf(&b, "Working Capital Liquidity Score: %s.\n", formatNumber(wc.LiquidityScore))
	}
	if agri != nil {
		fmt.Fprintf(&b, "EMI Stress Ratio: %s%%.\n", formatNumber(agri.EMIRatio))
	}

	b.WriteString("\n")
	b.WriteString(RiskTier(*masterScore))
	fmt.Fprintf(&b, "\n\nMaster Composite Score: %s", formatNumber(*masterScore))

	return b.String()
}

// formatNumber prints a number without trailing zeros.
func formatNumber(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// DecisionService aggregates stored module results into decisions and cases.
type DecisionService struct {
	store        store.Store
	pdfProcessor PDFProcessor
	now          func() time.Time
}

func NewDecisionService(st store.Store, pdfProcessor PDFProcessor) *DecisionService {
	return &DecisionService{
		store:        st,
		pdfProcessor: pdfProcessor,
		now:          time.Now,
	}
}

// LoadResults returns the latest stored result of each module; absent modules are nil.
func (s *DecisionService) LoadResults(ctx context.Context) (*dto.BankingResult, *dto.WorkingCapitalResult, *dto.AgricultureResult, error) {
	var banking dto.BankingResult
	var wc dto.WorkingCapitalResult
	var agri dto.AgricultureResult

	hasBanking, err := s.store.Get(ctx, store.KeyBanking, &banking)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load banking result: %w", err)
	}
	hasWC, err := s.store.Get(ctx, store.KeyWorkingCapital, &wc)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load working capital result: %w", err)
	}
	hasAgri, err := s.store.Get(ctx, store.KeyAgriculture, &agri)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load agriculture result: %w", err)
	}

	var bankingPtr *dto.BankingResult
	var wcPtr *dto.WorkingCapitalResult
	var agriPtr *dto.AgricultureResult
	if hasBanking {
		bankingPtr = &banking
	}
	if hasWC {
		wcPtr = &wc
	}
	if hasAgri {
		agriPtr = &agri
	}
	return bankingPtr, wcPtr, agriPtr, nil
}

// Dashboard returns the latest module results and the decision derived from them.
func (s *DecisionService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	banking, wc, agri, err := s.LoadResults(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		WC:      wc,
		Agri:    agri,
		Banking: banking,
		Decision: dto.CompositeDecision{
			MasterScore:  ComputeMasterScore(banking, wc, agri),
			DecisionText: GenerateDecision(banking, wc, agri),
		},
		AgriRepaymentNote: agri.RepaymentNote(),
	}, nil
}

// SaveCase snapshots the current dashboard under name.
func (s *DecisionService) SaveCase(ctx context.Context, name string) (*dto.Case, error) {
	if strings.TrimSpace(name) == "" {
		return nil, dto.ErrCaseNameRequired
	}

	banking, wc, agri, err := s.LoadResults(ctx)
	if err != nil {
		return nil, err
	}
	return s.SaveCaseWith(ctx, name, banking, wc, agri, GenerateDecision(banking, wc, agri))
}

// SaveCaseWith appends a case built from the given results and decision text.
func (s *DecisionService) SaveCaseWith(
	ctx context.Context,
	name string,
	banking *dto.BankingResult,
	wc *dto.WorkingCapitalResult,
	agri *dto.AgricultureResult,
	decisionText string,
) (*dto.Case, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dto.ErrCaseNameRequired
	}

	c := &dto.Case{
		ID:           ulid.Make().String(),
		Name:         name,
		CreatedAt:    s.now().UTC(),
		WC:           wc,
		Agri:         agri,
		Banking:      banking,
		DecisionText: decisionText,
	}

	if err := s.store.Append(ctx, store.KeyCases, c); err != nil {
		return nil, fmt.Errorf("failed to save case %q: %w", name, err)
	}

	log.Printf("Case %q saved (%s)", c.Name, c.ID)
	return c, nil
}

// ListCases returns saved cases, oldest first.
func (s *DecisionService) ListCases(ctx context.Context) ([]dto.Case, error) {
	cases, err := store.ListAll[dto.Case](ctx, s.store, store.KeyCases)
	if err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}
	if cases == nil {
		cases = []dto.Case{}
	}
	return cases, nil
}

// CaseReport renders the current decision as a PDF titled with the case name.
// It returns the document and a download filename.
func (s *DecisionService) CaseReport(ctx context.Context, name string) ([]byte, string, error) {
	banking, wc, agri, err := s.LoadResults(ctx)
	if err != nil {
		return nil, "", err
	}

	name = strings.TrimSpace(name)
	title := name
	filename := name
	if name == "" {
		title = unnamedCase
		filename = "dashboard"
	}

	lines := strings.Split(GenerateDecision(banking, wc, agri), "\n")
	data, err := s.pdfProcessor.RenderText("Case: "+title, lines)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render case report: %w", err)
	}
	return data, filename + ".pdf", nil
}
