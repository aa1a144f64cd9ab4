// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// LLMConfig provides settings needed by the LLM client (C4).
type LLMConfig interface {
	GetLLMAPIKey() string
	GetLLMBaseURL() string
	GetLLMModel() string
	GetLLMCallTimeout() time.Duration
	GetLLMRetryDelays() []time.Duration
}

// PipelineConfig provides settings shared by the consultation pipeline (C5-C11).
type PipelineConfig interface {
	GetBudgetTolerance() float64
	GetShortlistSize() int
	GetDeterministicWorkerPoolSize() int
	GetAIRankerWorkerPoolSize() int
	GetOverallBudget() time.Duration
}

// GeocodeConfig provides settings for the geocoder (C2).
type GeocodeConfig interface {
	GetGeocodeLRUSize() int
	GetGeocodeRatePerSecond() float64
}

// PricingConfig provides the per-token pricing table used for cost estimation.
type PricingConfig interface {
	GetInputTokenPriceUSD() float64
	GetOutputTokenPriceUSD() float64
}

// CatalogConfig provides settings for the catalog store (C1).
type CatalogConfig interface {
	GetCatalogWorkbookPath() string
	GetLocalityTablePath() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env            string
	HTTPAddr       string
	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	LLMAPIKey      string
	LLMBaseURL     string
	LLMModel       string
	LLMCallTimeout time.Duration
	LLMRetryDelays []time.Duration

	BudgetTolerance             float64
	ShortlistSize                int
	DeterministicWorkerPoolSize  int
	AIRankerWorkerPoolSize       int
	OverallBudget                time.Duration

	GeocodeLRUSize       int
	GeocodeRatePerSecond float64

	InputTokenPriceUSD  float64
	OutputTokenPriceUSD float64

	CatalogWorkbookPath string
	LocalityTablePath   string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// LLMConfig implementation
func (c *Config) GetLLMAPIKey() string               { return c.LLMAPIKey }
func (c *Config) GetLLMBaseURL() string               { return c.LLMBaseURL }
func (c *Config) GetLLMModel() string                 { return c.LLMModel }
func (c *Config) GetLLMCallTimeout() time.Duration     { return c.LLMCallTimeout }
func (c *Config) GetLLMRetryDelays() []time.Duration   { return c.LLMRetryDelays }

// PipelineConfig implementation
func (c *Config) GetBudgetTolerance() float64            { return c.BudgetTolerance }
func (c *Config) GetShortlistSize() int                  { return c.ShortlistSize }
func (c *Config) GetDeterministicWorkerPoolSize() int     { return c.DeterministicWorkerPoolSize }
func (c *Config) GetAIRankerWorkerPoolSize() int          { return c.AIRankerWorkerPoolSize }
func (c *Config) GetOverallBudget() time.Duration         { return c.OverallBudget }

// GeocodeConfig implementation
func (c *Config) GetGeocodeLRUSize() int          { return c.GeocodeLRUSize }
func (c *Config) GetGeocodeRatePerSecond() float64 { return c.GeocodeRatePerSecond }

// PricingConfig implementation
func (c *Config) GetInputTokenPriceUSD() float64  { return c.InputTokenPriceUSD }
func (c *Config) GetOutputTokenPriceUSD() float64 { return c.OutputTokenPriceUSD }

// CatalogConfig implementation
func (c *Config) GetCatalogWorkbookPath() string { return c.CatalogWorkbookPath }
func (c *Config) GetLocalityTablePath() string    { return c.LocalityTablePath }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com"),
		LLMModel:       getEnv("LLM_MODEL", "gemini-2.0-flash"),
		LLMCallTimeout: mustDuration(getEnv("LLM_CALL_TIMEOUT", "30s")),
		LLMRetryDelays: []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second},

		BudgetTolerance:             mustFloat(getEnv("BUDGET_TOLERANCE", "1.0"), 1.0),
		ShortlistSize:               int(mustInt64(getEnv("SHORTLIST_SIZE", "10"))),
		DeterministicWorkerPoolSize: int(mustInt64(getEnv("DETERMINISTIC_WORKER_POOL_SIZE", "5"))),
		AIRankerWorkerPoolSize:      int(mustInt64(getEnv("AI_RANKER_WORKER_POOL_SIZE", "3"))),
		OverallBudget:               mustDuration(getEnv("PIPELINE_OVERALL_BUDGET", "180s")),

		GeocodeLRUSize:       int(mustInt64(getEnv("GEOCODE_LRU_SIZE", "1024"))),
		GeocodeRatePerSecond: mustFloat(getEnv("GEOCODE_RATE_PER_SECOND", "1.0"), 1.0),

		InputTokenPriceUSD:  mustFloat(getEnv("LLM_INPUT_TOKEN_PRICE_USD", "0.0000001"), 0.0000001),
		OutputTokenPriceUSD: mustFloat(getEnv("LLM_OUTPUT_TOKEN_PRICE_USD", "0.0000004"), 0.0000004),

		CatalogWorkbookPath: getEnv("CATALOG_WORKBOOK_PATH", "./data/communities.xlsx"),
		LocalityTablePath:   getEnv("LOCALITY_TABLE_PATH", "./data/localities.json"),
	}

	if cfg.CatalogWorkbookPath == "" {
		return nil, fmt.Errorf("CATALOG_WORKBOOK_PATH is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.BudgetTolerance <= 0 {
		return nil, fmt.Errorf("BUDGET_TOLERANCE must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string, fallback float64) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
