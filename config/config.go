package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LLMConfig holds the connection settings for the hosted completion API.
type LLMConfig struct {
	APIKey      string `mapstructure:"api_key"`      // Usually injected via OPENAI_API_KEY
	BaseURL     string `mapstructure:"base_url"`     // Empty means the provider default
	VisionModel string `mapstructure:"vision_model"` // Model used for chart image analysis
	TextModel   string `mapstructure:"text_model"`   // Model used for follow-up Q&A
}

// CaptureConfig controls the headless-browser screenshot pipeline.
type CaptureConfig struct {
	ChartBaseURL      string        `mapstructure:"chart_base_url"` // Pre-rendered chart page, e.g. http://localhost:3000/chart
	ScreenshotDir     string        `mapstructure:"screenshot_dir"`
	PublicPrefix      string        `mapstructure:"public_prefix"` // URL prefix the screenshots are served under
	Intervals         []string      `mapstructure:"intervals"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	PollCeiling       time.Duration `mapstructure:"poll_ceiling"`
	FallbackDelay     time.Duration `mapstructure:"fallback_delay"`
	MaxConcurrent     int           `mapstructure:"max_concurrent"`
}

// PaginationConfig is the single source of truth for page-size limits.
// Every endpoint clamps against the same maximum.
type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

// AssistantConfig tunes the follow-up Q&A service.
type AssistantConfig struct {
	HistoryLimit    int  `mapstructure:"history_limit"`
	QuoteEnrichment bool `mapstructure:"quote_enrichment"`
}

// SymbolSearchConfig points at the third-party symbol-search API.
type SymbolSearchConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		DSN string `mapstructure:"dsn"` // "memory" or a SQLite file path
	} `mapstructure:"database"`
	LLM          LLMConfig          `mapstructure:"llm"`
	Capture      CaptureConfig      `mapstructure:"capture"`
	Pagination   PaginationConfig   `mapstructure:"pagination"`
	Assistant    AssistantConfig    `mapstructure:"assistant"`
	SymbolSearch SymbolSearchConfig `mapstructure:"symbol_search"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from .env, config.yaml and environment
// variables, in that order of increasing precedence.
func LoadConfig() {
	// .env is optional; real deployments set environment variables directly.
	if err := godotenv.Load(); err == nil {
		log.Println("INFO: [Config] Loaded environment overrides from .env file.")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "chartiq.db")
	viper.SetDefault("llm.vision_model", "gpt-4o")
	viper.SetDefault("llm.text_model", "gpt-4o-mini")
	viper.SetDefault("capture.chart_base_url", "http://localhost:3000/chart")
	viper.SetDefault("capture.screenshot_dir", "public/screenshots")
	viper.SetDefault("capture.public_prefix", "/screenshots")
	viper.SetDefault("capture.intervals", []string{"1hr", "4hr", "1d"})
	viper.SetDefault("capture.navigation_timeout", 30*time.Second)
	viper.SetDefault("capture.poll_interval", 500*time.Millisecond)
	viper.SetDefault("capture.poll_ceiling", 20*time.Second)
	viper.SetDefault("capture.fallback_delay", 5*time.Second)
	viper.SetDefault("capture.max_concurrent", 2)
	viper.SetDefault("pagination.default_page_size", 10)
	viper.SetDefault("pagination.max_page_size", 50)
	viper.SetDefault("assistant.history_limit", 10)
	viper.SetDefault("assistant.quote_enrichment", false)
	viper.SetDefault("symbol_search.base_url", "https://symbol-search.tradingview.com/symbol_search/")
	viper.SetDefault("symbol_search.timeout", 10*time.Second)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides for secrets and deployment knobs.
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		AppConfig.LLM.APIKey = key
		log.Println("INFO: [Config] Loaded LLM API key from environment variable OPENAI_API_KEY.")
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		AppConfig.LLM.BaseURL = baseURL
	}
	if chartURL := os.Getenv("CHART_BASE_URL"); chartURL != "" {
		AppConfig.Capture.ChartBaseURL = chartURL
	}

	if AppConfig.LLM.APIKey == "" {
		log.Println("WARN: [Config] LLM API key is not set. Analysis and assistant endpoints will fail until OPENAI_API_KEY is provided.")
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
