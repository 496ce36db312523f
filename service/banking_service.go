package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/store"
	"github.com/Aashish23092/loan-underwriting/utils"
	"golang.org/x/sync/errgroup"
)

// maxParallelStatements bounds how many statements are parsed at once.
const maxParallelStatements = 4

// TransactionLedger accumulates statement entries across uploads.
// Each Append is atomic; entries are never deduplicated.
type TransactionLedger struct {
	mu   sync.Mutex
	txns []dto.Transaction
}

func (l *TransactionLedger) Append(txns []dto.Transaction) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txns = append(l.txns, txns...)
	return len(l.txns)
}

func (l *TransactionLedger) Snapshot() []dto.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]dto.Transaction(nil), l.txns...)
}

func (l *TransactionLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.txns)
}

func (l *TransactionLedger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txns = nil
}

// BankingService collects bank statements and scores account hygiene.
type BankingService struct {
	reader      *DocumentReader
	backend     ScoringBackend
	store       store.Store
	ledger      *TransactionLedger
	monthsCount int
}

func NewBankingService(reader *DocumentReader, backend ScoringBackend, st store.Store, monthsCount int) *BankingService {
	return &BankingService{
		reader:      reader,
		backend:     backend,
		store:       st,
		ledger:      &TransactionLedger{},
		monthsCount: monthsCount,
	}
}

// Upload parses every statement concurrently and appends each file's entries to the
// ledger as soon as that file is done. A file that fails to parse is reported as a
// warning and does not affect the others.
func (s *BankingService) Upload(ctx context.Context, docs []Document) (*dto.UploadSummary, error) {
	if len(docs) == 0 {
		return nil, dto.ErrNoFiles
	}

	summary := &dto.UploadSummary{Files: len(docs), Warnings: []string{}}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelStatements)

	for _, doc := range docs {
		doc := doc
		fallbackAccount := utils.DefaultAccount
		if len(docs) > 1 {
			fallbackAccount = doc.Filename
		}

		g.Go(func() error {
			txns, err := s.reader.ReadTransactions(gCtx, doc, fallbackAccount)
			if err != nil {
				log.Printf("Warning: failed to parse statement %s: %v", doc.Filename, err)
				mu.Lock()
				summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s: %v", doc.Filename, err))
				mu.Unlock()
				return nil
			}

			s.ledger.Append(txns)
			log.Printf("Parsed %d transactions from %s", len(txns), doc.Filename)

			mu.Lock()
			summary.Added += len(txns)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.TotalTransactions = s.ledger.Len()
	return summary, nil
}

// Transactions returns every accumulated transaction in arrival order.
func (s *BankingService) Transactions() []dto.Transaction {
	return s.ledger.Snapshot()
}

// Reset discards all accumulated transactions.
func (s *BankingService) Reset() {
	s.ledger.Reset()
	log.Println("Banking transaction ledger cleared")
}

// Analyze sends the accumulated transactions to the backend and stores the result.
// monthsCount <= 0 uses the configured default.
func (s *BankingService) Analyze(ctx context.Context, monthsCount int) (*dto.BankingResult, error) {
	txns := s.ledger.Snapshot()
	if len(txns) == 0 {
		return nil, dto.ErrNoTransactions
	}
	if monthsCount <= 0 {
		monthsCount = s.monthsCount
	}

	result, err := s.backend.Banking(ctx, dto.BankingAnalyzeRequest{
		Transactions: txns,
		MonthsCount:  monthsCount,
	})
	if err != nil {
		return nil, fmt.Errorf("banking analysis failed: %w", err)
	}

	if err := s.store.Put(ctx, store.KeyBanking, result); err != nil {
		return nil, fmt.Errorf("failed to save banking result: %w", err)
	}

	log.Printf("Banking analysed over %d months: hygiene score %.2f (%s)", monthsCount, result.HygieneScore, result.HygieneStatus)
	return result, nil
}
