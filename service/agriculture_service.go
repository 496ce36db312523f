package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/store"
)

type AgricultureService struct {
	backend ScoringBackend
	store   store.Store
}

func NewAgricultureService(backend ScoringBackend, st store.Store) *AgricultureService {
	return &AgricultureService{backend: backend, store: st}
}

// Calculate scores agriculture income and stores the result.
func (s *AgricultureService) Calculate(ctx context.Context, req dto.AgricultureRequest) (*dto.AgricultureResult, error) {
	result, err := s.backend.Agriculture(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("agriculture calculation failed: %w", err)
	}

	if err := s.store.Put(ctx, store.KeyAgriculture, result); err != nil {
		return nil, fmt.Errorf("failed to save agriculture result: %w", err)
	}

	if result.Rejected() {
		log.Printf("Agriculture application rejected: %s", result.RejectionReason)
	} else {
		log.Printf("Agriculture scored: agri score %.2f, EMI ratio %.2f%%", result.AgriScore, result.EMIRatio)
	}
	return result, nil
}
