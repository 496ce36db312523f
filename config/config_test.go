package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "SCORING_API_URL", "SCORING_TIMEOUT", "DATABASE_PATH", "MAX_UPLOAD_MB", "BANKING_MONTHS_COUNT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "http://localhost:8000", cfg.ScoringAPIURL)
	assert.Equal(t, 30*time.Second, cfg.ScoringTimeout)
	assert.Equal(t, "data/underwriting.db", cfg.DatabasePath)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadSize)
	assert.Equal(t, 3, cfg.BankingMonthsCount)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SCORING_API_URL", "https://scoring.internal")
	t.Setenv("SCORING_TIMEOUT", "5s")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("BANKING_MONTHS_COUNT", "6")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "https://scoring.internal", cfg.ScoringAPIURL)
	assert.Equal(t, 5*time.Second, cfg.ScoringTimeout)
	assert.Equal(t, int64(8<<20), cfg.MaxUploadSize)
	assert.Equal(t, 6, cfg.BankingMonthsCount)
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SCORING_TIMEOUT", "soon")
	t.Setenv("BANKING_MONTHS_COUNT", "-2")

	cfg := LoadConfig()

	assert.Equal(t, 30*time.Second, cfg.ScoringTimeout)
	assert.Equal(t, 3, cfg.BankingMonthsCount)
}
