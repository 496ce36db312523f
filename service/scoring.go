package service

import (
	"context"

	"github.com/Aashish23092/loan-underwriting/dto"
)

// ScoringBackend computes module scores remotely.
type ScoringBackend interface {
	WorkingCapital(ctx context.Context, req dto.WorkingCapitalRequest) (*dto.WorkingCapitalResult, error)
	Agriculture(ctx context.Context, req dto.AgricultureRequest) (*dto.AgricultureResult, error)
	Banking(ctx context.Context, req dto.BankingAnalyzeRequest) (*dto.BankingResult, error)
}
