package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Aashish23092/loan-underwriting/dto"
)

// BackendError is returned when the scoring backend answers with a non-success status.
type BackendError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("scoring backend %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// ScoringClient talks to the remote scoring backend that computes module scores.
type ScoringClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewScoringClient creates a client for the backend at baseURL.
func NewScoringClient(baseURL string, timeout time.Duration) *ScoringClient {
	log.Printf("Scoring backend configured at %s (timeout %s)", baseURL, timeout)

	return &ScoringClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WorkingCapital scores working-capital fields.
func (c *ScoringClient) WorkingCapital(ctx context.Context, req dto.WorkingCapitalRequest) (*dto.WorkingCapitalResult, error) {
	var result dto.WorkingCapitalResult
	if err := c.post(ctx, "/wc/calculate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Agriculture scores agriculture income and EMI inputs.
func (c *ScoringClient) Agriculture(ctx context.Context, req dto.AgricultureRequest) (*dto.AgricultureResult, error) {
	var result dto.AgricultureResult
	if err := c.post(ctx, "/agriculture/calculate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Banking scores a list of bank transactions over monthsCount months.
func (c *ScoringClient) Banking(ctx context.Context, req dto.BankingAnalyzeRequest) (*dto.BankingResult, error) {
	var result dto.BankingResult
	if err := c.post(ctx, "/banking/analyze", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *ScoringClient) post(ctx context.Context, endpoint string, payload, out any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call scoring backend %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &BackendError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	log.Printf("Scoring backend %s answered %d", endpoint, resp.StatusCode)
	return nil
}
