// Package igvconfig loads the process configuration: defaults are
// cloned, environment overrides are applied on top, and the resulting
// Config is treated as immutable and threaded explicitly into every
// component. No package holds configuration globals.
package igvconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getlantern/deepcopy"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr          string `mapstructure:"APP_ADDR"`
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	// --- S3 ---
	S3Bucket string `mapstructure:"S3_BUCKET"`
	S3Region string `mapstructure:"S3_REGION"`

	// --- Airtable ---
	AirtableEndpoint      string `mapstructure:"AIRTABLE_API_ENDPOINT"`
	AirtableAPIKey        string `mapstructure:"AIRTABLE_API_KEY"`
	ExperimentsTable      string `mapstructure:"AIRTABLE_EXPERIMENTS_TABLE"`
	SamplesTable          string `mapstructure:"AIRTABLE_SAMPLES_TABLE"`
	SampleExperimentField string `mapstructure:"AIRTABLE_SAMPLE_EXPERIMENT_FIELD"`

	// --- Relay tuning ---
	ChunkSize    int           `mapstructure:"CHUNK_SIZE"`
	ChunkTimeout time.Duration `mapstructure:"CHUNK_TIMEOUT"`

	// --- Menu ---
	MenuCacheTTL time.Duration `mapstructure:"MENU_CACHE_TTL"`

	// --- CORS ---
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaultConfig = &Config{
	Addr:                  ":3000",
	PublicBaseURL:         "http://localhost:3000",
	LogLevel:              "info",
	S3Region:              "ap-southeast-2",
	AirtableEndpoint:      "https://api.airtable.com/v0/",
	ExperimentsTable:      "Genomics%20Expt",
	SamplesTable:          "Genomics%20Sample",
	SampleExperimentField: "Experiment",
	ChunkSize:             64 * 1024,
	ChunkTimeout:          30 * time.Second,
	MenuCacheTTL:          24 * time.Hour,
	CORSAllowedOrigins:    "*",
}

var envKeys = []string{
	"APP_ADDR", "PUBLIC_BASE_URL", "LOG_LEVEL",
	"S3_BUCKET", "S3_REGION",
	"AIRTABLE_API_ENDPOINT", "AIRTABLE_API_KEY",
	"AIRTABLE_EXPERIMENTS_TABLE", "AIRTABLE_SAMPLES_TABLE",
	"AIRTABLE_SAMPLE_EXPERIMENT_FIELD",
	"CHUNK_SIZE", "CHUNK_TIMEOUT", "MENU_CACHE_TTL",
	"CORS_ALLOWED_ORIGINS",
}

// Load builds the effective configuration: a deep copy of the defaults
// with environment variables layered on top. A .env file is honored
// when present, for local development.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	cfg := new(Config)
	if err := deepcopy.Copy(cfg, defaultConfig); err != nil {
		return nil, fmt.Errorf("cloning default config: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}
	v.SetDefault("APP_ADDR", cfg.Addr)
	v.SetDefault("PUBLIC_BASE_URL", cfg.PublicBaseURL)
	v.SetDefault("LOG_LEVEL", cfg.LogLevel)
	v.SetDefault("S3_REGION", cfg.S3Region)
	v.SetDefault("AIRTABLE_API_ENDPOINT", cfg.AirtableEndpoint)
	v.SetDefault("AIRTABLE_EXPERIMENTS_TABLE", cfg.ExperimentsTable)
	v.SetDefault("AIRTABLE_SAMPLES_TABLE", cfg.SamplesTable)
	v.SetDefault("AIRTABLE_SAMPLE_EXPERIMENT_FIELD", cfg.SampleExperimentField)
	v.SetDefault("CHUNK_SIZE", cfg.ChunkSize)
	v.SetDefault("CHUNK_TIMEOUT", cfg.ChunkTimeout)
	v.SetDefault("MENU_CACHE_TTL", cfg.MenuCacheTTL)
	v.SetDefault("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.S3Bucket == "" {
		return nil, errors.New("S3_BUCKET must be set")
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be positive, got %d", cfg.ChunkSize)
	}

	return cfg, nil
}

// Origins splits the configured CORS origin list.
func (c *Config) Origins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String renders the configuration with secrets masked.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Addr: %s\n", c.Addr))
	sb.WriteString(fmt.Sprintf("  PublicBaseURL: %s\n", c.PublicBaseURL))
	sb.WriteString(fmt.Sprintf("  LogLevel: %s\n", c.LogLevel))
	sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
	sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
	sb.WriteString(fmt.Sprintf("  AirtableEndpoint: %s\n", c.AirtableEndpoint))
	if c.AirtableAPIKey != "" {
		sb.WriteString("  AirtableAPIKey: ********\n")
	} else {
		sb.WriteString("  AirtableAPIKey: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  ExperimentsTable: %s\n", c.ExperimentsTable))
	sb.WriteString(fmt.Sprintf("  SamplesTable: %s\n", c.SamplesTable))
	sb.WriteString(fmt.Sprintf("  ChunkSize: %d\n", c.ChunkSize))
	sb.WriteString(fmt.Sprintf("  ChunkTimeout: %s\n", c.ChunkTimeout))
	sb.WriteString(fmt.Sprintf("  MenuCacheTTL: %s\n", c.MenuCacheTTL))
	sb.WriteString(fmt.Sprintf("  CORSAllowedOrigins: %s\n", c.CORSAllowedOrigins))
	return sb.String()
}
