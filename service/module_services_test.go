package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu          sync.Mutex
	err         error
	wcRequests  []dto.WorkingCapitalRequest
	bankingReqs []dto.BankingAnalyzeRequest
	wc          dto.WorkingCapitalResult
	agri        dto.AgricultureResult
	banking     dto.BankingResult
}

func (f *fakeBackend) WorkingCapital(_ context.Context, req dto.WorkingCapitalRequest) (*dto.WorkingCapitalResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wcRequests = append(f.wcRequests, req)
	if f.err != nil {
		return nil, f.err
	}
	result := f.wc
	return &result, nil
}

func (f *fakeBackend) Agriculture(_ context.Context, _ dto.AgricultureRequest) (*dto.AgricultureResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := f.agri
	return &result, nil
}

func (f *fakeBackend) Banking(_ context.Context, req dto.BankingAnalyzeRequest) (*dto.BankingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bankingReqs = append(f.bankingReqs, req)
	if f.err != nil {
		return nil, f.err
	}
	result := f.banking
	return &result, nil
}

func TestWorkingCapitalExtractMergesDraft(t *testing.T) {
	ctx := context.Background()
	reader := NewDocumentReader(&fakePDFProcessor{}, nil)
	svc := NewWorkingCapitalService(reader, &fakeBackend{}, store.NewMemoryStore())

	first, err := svc.ExtractFromDocument(ctx, Document{
		Filename: "bs.csv",
		Data:     []byte("Current Assets,\"12,500\"\nInventory,3000\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, dto.ExtractedFields{dto.FieldCurrentAssets: 12500, dto.FieldInventory: 3000}, first)

	second, err := svc.ExtractFromDocument(ctx, Document{
		Filename: "pl.csv",
		Data:     []byte("Revenue,90000\nInventory,3500\n"),
	})
	require.NoError(t, err)
	assert.Len(t, second, 2)

	assert.Equal(t, dto.ExtractedFields{
		dto.FieldCurrentAssets: 12500,
		dto.FieldInventory:     3500,
		dto.FieldAnnualSales:   90000,
	}, svc.Draft())
}

func TestWorkingCapitalExtractUnsupported(t *testing.T) {
	svc := NewWorkingCapitalService(NewDocumentReader(&fakePDFProcessor{}, nil), &fakeBackend{}, store.NewMemoryStore())

	_, err := svc.ExtractFromDocument(context.Background(), Document{Filename: "photo.jpg"})

	assert.ErrorIs(t, err, dto.ErrUnsupportedFormat)
	assert.Empty(t, svc.Draft())
}

func TestWorkingCapitalCalculateStoresResult(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	backend := &fakeBackend{wc: dto.WorkingCapitalResult{NWC: 4500, LiquidityScore: 72}}
	svc := NewWorkingCapitalService(NewDocumentReader(&fakePDFProcessor{}, nil), backend, st)

	result, err := svc.Calculate(ctx, dto.ExtractedFields{dto.FieldCurrentAssets: 12500}.Request())
	require.NoError(t, err)
	assert.Equal(t, 72.0, result.LiquidityScore)
	assert.Equal(t, 12500.0, backend.wcRequests[0].CurrentAssets)

	var stored dto.WorkingCapitalResult
	found, err := st.Get(ctx, store.KeyWorkingCapital, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4500.0, stored.NWC)
}

func TestWorkingCapitalCalculateDraftRejectsEmptyDraft(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	backend := &fakeBackend{}
	svc := NewWorkingCapitalService(NewDocumentReader(&fakePDFProcessor{}, nil), backend, st)

	_, err := svc.CalculateDraft(ctx)

	assert.ErrorIs(t, err, dto.ErrEmptyDraft)
	assert.Empty(t, backend.wcRequests)
	found, err := st.Get(ctx, store.KeyWorkingCapital, &dto.WorkingCapitalResult{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWorkingCapitalCalculateDraftSendsExtractedFields(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{wc: dto.WorkingCapitalResult{LiquidityScore: 65}}
	svc := NewWorkingCapitalService(NewDocumentReader(&fakePDFProcessor{}, nil), backend, store.NewMemoryStore())

	_, err := svc.ExtractFromDocument(ctx, Document{Filename: "bs.csv", Data: []byte("Sundry Debtors,2400\n")})
	require.NoError(t, err)

	result, err := svc.CalculateDraft(ctx)

	require.NoError(t, err)
	assert.Equal(t, 65.0, result.LiquidityScore)
	require.Len(t, backend.wcRequests, 1)
	assert.Equal(t, dto.WorkingCapitalRequest{Receivables: 2400}, backend.wcRequests[0])
}

func TestBackendFailureKeepsPreviousResults(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Put(ctx, store.KeyAgriculture, dto.AgricultureResult{AgriScore: 55}))
	require.NoError(t, st.Put(ctx, store.KeyWorkingCapital, dto.WorkingCapitalResult{LiquidityScore: 61}))

	backend := &fakeBackend{err: errors.New("connection refused")}
	wcSvc := NewWorkingCapitalService(NewDocumentReader(&fakePDFProcessor{}, nil), backend, st)
	agriSvc := NewAgricultureService(backend, st)

	_, err := agriSvc.Calculate(ctx, dto.AgricultureRequest{DocumentedIncome: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	_, err = wcSvc.Calculate(ctx, dto.WorkingCapitalRequest{})
	require.Error(t, err)

	var agri dto.AgricultureResult
	_, err = st.Get(ctx, store.KeyAgriculture, &agri)
	require.NoError(t, err)
	assert.Equal(t, 55.0, agri.AgriScore)

	var wc dto.WorkingCapitalResult
	_, err = st.Get(ctx, store.KeyWorkingCapital, &wc)
	require.NoError(t, err)
	assert.Equal(t, 61.0, wc.LiquidityScore)
}

func TestAgricultureCalculateStoresRejection(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	backend := &fakeBackend{agri: dto.AgricultureResult{Status: dto.AgriStatusRejected, RejectionReason: "EMI too high"}}

	result, err := NewAgricultureService(backend, st).Calculate(ctx, dto.AgricultureRequest{EMIMonthly: 9000})
	require.NoError(t, err)
	assert.True(t, result.Rejected())

	var stored dto.AgricultureResult
	found, err := st.Get(ctx, store.KeyAgriculture, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "EMI too high", stored.RejectionReason)
}

func TestBankingUploadSingleFileUsesPrimaryAccount(t *testing.T) {
	svc := NewBankingService(NewDocumentReader(&fakePDFProcessor{}, nil), &fakeBackend{}, store.NewMemoryStore(), 3)

	summary, err := svc.Upload(context.Background(), []Document{{
		Filename: "april.csv",
		Data:     []byte("date,credit,debit,desc\n01/04/2025,100,0,a\n02/04/2025,0,50,b\n"),
	}})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Added)
	assert.Equal(t, 2, summary.TotalTransactions)
	assert.Empty(t, summary.Warnings)

	txns := svc.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, "Primary", txns[0].Account)
	assert.Equal(t, "a", txns[0].Description)
	assert.Equal(t, "b", txns[1].Description)
}

func TestBankingUploadMultipleFilesKeepsEveryRow(t *testing.T) {
	svc := NewBankingService(NewDocumentReader(&fakePDFProcessor{}, nil), &fakeBackend{}, store.NewMemoryStore(), 3)

	docs := []Document{
		{Filename: "hdfc.csv", Data: []byte("Date,Credit,Debit,Description\n01/04/2025,100,0,x\n01/04/2025,100,0,x\n")},
		{Filename: "sbi.csv", Data: []byte("Date,Credit,Debit,Description\n03/04/2025,0,20,y\n")},
		{Filename: "notes.txt", Data: []byte("hello")},
	}

	summary, err := svc.Upload(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, 3, summary.Added)
	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "notes.txt")

	txns := svc.Transactions()
	require.Len(t, txns, 3)

	var accounts []string
	for _, txn := range txns {
		accounts = append(accounts, txn.Account)
	}
	sort.Strings(accounts)
	assert.Equal(t, []string{"hdfc.csv", "hdfc.csv", "sbi.csv"}, accounts)

	// a second upload appends, never replaces
	summary, err = svc.Upload(context.Background(), docs[1:2])
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalTransactions)
}

func TestBankingUploadNoFiles(t *testing.T) {
	svc := NewBankingService(NewDocumentReader(&fakePDFProcessor{}, nil), &fakeBackend{}, store.NewMemoryStore(), 3)

	_, err := svc.Upload(context.Background(), nil)
	assert.ErrorIs(t, err, dto.ErrNoFiles)
}

func TestBankingAnalyzeRejectsEmptyLedger(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewBankingService(NewDocumentReader(&fakePDFProcessor{}, nil), backend, store.NewMemoryStore(), 3)

	_, err := svc.Analyze(context.Background(), 0)

	assert.ErrorIs(t, err, dto.ErrNoTransactions)
	assert.Empty(t, backend.bankingReqs)
}

func TestBankingAnalyzeSendsLedger(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	backend := &fakeBackend{banking: dto.BankingResult{HygieneScore: 77, HygieneStatus: "Good"}}
	svc := NewBankingService(NewDocumentReader(&fakePDFProcessor{}, nil), backend, st, 3)

	_, err := svc.Upload(ctx, []Document{{Filename: "a.csv", Data: []byte("credit,debit\n10,0\n")}})
	require.NoError(t, err)

	result, err := svc.Analyze(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 77.0, result.HygieneScore)

	require.Len(t, backend.bankingReqs, 1)
	assert.Equal(t, 3, backend.bankingReqs[0].MonthsCount)
	assert.Len(t, backend.bankingReqs[0].Transactions, 1)

	_, err = svc.Analyze(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, backend.bankingReqs[1].MonthsCount)

	var stored dto.BankingResult
	found, err := st.Get(ctx, store.KeyBanking, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Good", stored.HygieneStatus)
}

func TestBankingReset(t *testing.T) {
	svc := NewBankingService(NewDocumentReader(&fakePDFProcessor{}, nil), &fakeBackend{}, store.NewMemoryStore(), 3)
	_, err := svc.Upload(context.Background(), []Document{{Filename: "a.csv", Data: []byte("credit\n1\n")}})
	require.NoError(t, err)

	svc.Reset()

	assert.Empty(t, svc.Transactions())
	_, err = svc.Analyze(context.Background(), 3)
	assert.ErrorIs(t, err, dto.ErrNoTransactions)
}

func TestTransactionLedgerConcurrentAppend(t *testing.T) {
	ledger := &TransactionLedger{}
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ledger.Append([]dto.Transaction{{Credit: 1}, {Credit: 2}})
		}()
	}
	wg.Wait()

	txns := ledger.Snapshot()
	require.Len(t, txns, 40)
	for i := 0; i < len(txns); i += 2 {
		// each file's rows stay contiguous and in order
		assert.Equal(t, 1.0, txns[i].Credit)
		assert.Equal(t, 2.0, txns[i+1].Credit)
	}
}
