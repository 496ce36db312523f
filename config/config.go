package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	ScoringAPIURL      string
	ScoringTimeout     time.Duration
	DatabasePath       string
	TesseractDataPath  string
	MaxUploadSize      int64 // request body cap in bytes
	BankingMonthsCount int
}

// LoadConfig reads settings from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		ScoringAPIURL:      getEnv("SCORING_API_URL", "http://localhost:8000"),
		ScoringTimeout:     getDuration("SCORING_TIMEOUT", 30*time.Second),
		DatabasePath:       getEnv("DATABASE_PATH", "data/underwriting.db"),
		TesseractDataPath:  getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		MaxUploadSize:      int64(getInt("MAX_UPLOAD_MB", 32)) << 20,
		BankingMonthsCount: getInt("BANKING_MONTHS_COUNT", 3),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
