package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// HTTP server configuration
	HTTP HTTPConfig

	// External service configurations
	Alpaca    AlpacaConfig
	Sentiment SentimentConfig

	// Analysis configuration
	Analysis AnalysisConfig

	// Logging configuration
	Log LogConfig
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins string
	RequestTimeoutSec  int
}

// AlpacaConfig holds Alpaca API configuration. When both keys are set,
// Alpaca replaces Yahoo as the price provider.
type AlpacaConfig struct {
	APIKey    string
	APISecret string
}

// SentimentConfig holds sentiment service configuration
type SentimentConfig struct {
	BaseURL    string
	Limit      int
	TimeoutSec int
}

// AnalysisConfig holds analysis pipeline configuration
type AnalysisConfig struct {
	ErrorDisplaySec int // how long the UI shows an error before returning to input-ready
}

// LogConfig holds logging configuration
type LogConfig struct {
	Production bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port:               getEnvString("PORT", "8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
			RequestTimeoutSec:  getEnvInt("HTTP_REQUEST_TIMEOUT_SECONDS", 60),
		},
		Alpaca: AlpacaConfig{
			APIKey:    os.Getenv("ALPACA_API_KEY"),
			APISecret: os.Getenv("ALPACA_API_SECRET"),
		},
		Sentiment: SentimentConfig{
			BaseURL:    getEnvString("SENTIMENT_API_URL", "https://finance-news-api-wb4oco6h6a-ew.a.run.app"),
			Limit:      getEnvInt("SENTIMENT_LIMIT", 10),
			TimeoutSec: getEnvInt("SENTIMENT_TIMEOUT_SECONDS", 30),
		},
		Analysis: AnalysisConfig{
			ErrorDisplaySec: getEnvInt("ERROR_DISPLAY_SECONDS", 5),
		},
		Log: LogConfig{
			Production: getEnvBool("LOG_PRODUCTION", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Sentiment.BaseURL == "" {
		return fmt.Errorf("SENTIMENT_API_URL must not be empty")
	}
	if c.Sentiment.Limit <= 0 || c.Sentiment.Limit > 100 {
		return fmt.Errorf("SENTIMENT_LIMIT must be between 1 and 100, got %d", c.Sentiment.Limit)
	}
	if c.Sentiment.TimeoutSec <= 0 {
		return fmt.Errorf("SENTIMENT_TIMEOUT_SECONDS must be positive, got %d", c.Sentiment.TimeoutSec)
	}
	if c.HTTP.RequestTimeoutSec <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.HTTP.RequestTimeoutSec)
	}
	if c.Analysis.ErrorDisplaySec <= 0 {
		return fmt.Errorf("ERROR_DISPLAY_SECONDS must be positive, got %d", c.Analysis.ErrorDisplaySec)
	}
	return nil
}

// HasAlpaca returns true if Alpaca credentials are available
func (c *Config) HasAlpaca() bool {
	return c.Alpaca.APIKey != "" && c.Alpaca.APISecret != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:               "8080",
			CORSAllowedOrigins: "*",
			RequestTimeoutSec:  60,
		},
		Alpaca: AlpacaConfig{},
		Sentiment: SentimentConfig{
			BaseURL:    "http://localhost:9999",
			Limit:      10,
			TimeoutSec: 30,
		},
		Analysis: AnalysisConfig{
			ErrorDisplaySec: 1,
		},
		Log: LogConfig{},
	}
}
