package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/store"
	"github.com/Aashish23092/loan-underwriting/utils"
)

// WorkingCapitalService extracts balance-sheet fields from uploads and scores them.
type WorkingCapitalService struct {
	reader  *DocumentReader
	backend ScoringBackend
	store   store.Store

	mu    sync.Mutex
	draft dto.ExtractedFields
}

func NewWorkingCapitalService(reader *DocumentReader, backend ScoringBackend, st store.Store) *WorkingCapitalService {
	return &WorkingCapitalService{
		reader:  reader,
		backend: backend,
		store:   st,
		draft:   dto.ExtractedFields{},
	}
}

// ExtractFromDocument reads a financial statement and merges the fields it finds
// into the draft form. It returns the fields found in this document only.
func (s *WorkingCapitalService) ExtractFromDocument(ctx context.Context, doc Document) (dto.ExtractedFields, error) {
	rows, err := s.reader.ReadRows(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", doc.Filename, err)
	}

	fields := utils.ExtractFields(rows)
	log.Printf("Extracted %d working-capital fields from %s (%d rows)", len(fields), doc.Filename, len(rows))

	s.mu.Lock()
	s.draft.Merge(fields)
	s.mu.Unlock()

	return fields, nil
}

// Draft returns a copy of the fields accumulated from uploads so far.
func (s *WorkingCapitalService) Draft() dto.ExtractedFields {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(dto.ExtractedFields, len(s.draft))
	out.Merge(s.draft)
	return out
}

// CalculateDraft scores the fields accumulated from uploads. An empty draft is
// rejected without calling the backend.
func (s *WorkingCapitalService) CalculateDraft(ctx context.Context) (*dto.WorkingCapitalResult, error) {
	draft := s.Draft()
	if len(draft) == 0 {
		return nil, dto.ErrEmptyDraft
	}
	return s.Calculate(ctx, draft.Request())
}

// Calculate scores the request and stores the result as the latest working-capital result.
func (s *WorkingCapitalService) Calculate(ctx context.Context, req dto.WorkingCapitalRequest) (*dto.WorkingCapitalResult, error) {
	result, err := s.backend.WorkingCapital(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("working capital calculation failed: %w", err)
	}

	if err := s.store.Put(ctx, store.KeyWorkingCapital, result); err != nil {
		return nil, fmt.Errorf("failed to save working capital result: %w", err)
	}

	log.Printf("Working capital scored: liquidity score %.2f", result.LiquidityScore)
	return result, nil
}
