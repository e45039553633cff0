// Package config provides configuration management for the news-wire crawler.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"aacrawler/pkg/utils"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL       = errors.New("api.base_url is required")
	ErrInvalidBaseURL       = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout       = errors.New("api.timeout_sec must be at least 1")
	ErrInvalidMaxBody       = errors.New("api.max_body_kb must be at least 1")
	ErrInvalidPacing        = errors.New("crawler.pacing_ms must be non-negative")
	ErrInvalidSummaryLength = errors.New("crawler.summary_length must be at least 1")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("logging.format must be 'text' or 'json'")
)

// Defaults for the news-wire API.
const (
	DefaultBaseURL       = "https://api.aa.com.tr"
	DefaultTimeoutSec    = 30
	DefaultMaxBodyKb     = 10 * 1024
	DefaultPacingMs      = 300
	DefaultSummaryLength = 150
	DefaultServerAddr    = ":8080"
	DefaultConfigPath    = "configs/crawler.yaml"
)

// Environment variables that override file settings.
const (
	EnvUserName = "AA_USER_NAME"
	EnvPassword = "AA_PASSWORD"
	EnvBaseURL  = "AA_BASE_URL"
	EnvLogLevel = "AA_LOG_LEVEL"
)

// Config represents the complete crawler configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Crawler CrawlerConfig `yaml:"crawler"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// APIConfig describes the remote news-wire account.
type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	UserName   string `yaml:"user_name"`
	Password   string `yaml:"password"`
	TimeoutSec int    `yaml:"timeout_sec"`
	MaxBodyKb  int    `yaml:"max_body_kb"`
}

// CrawlerConfig contains crawl pipeline settings.
type CrawlerConfig struct {
	Filters       Attributes `yaml:"filters"`
	PacingMs      int        `yaml:"pacing_ms"`
	SummaryLength int        `yaml:"summary_length"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a configuration populated with the built-in defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    DefaultBaseURL,
			TimeoutSec: DefaultTimeoutSec,
			MaxBodyKb:  DefaultMaxBodyKb,
		},
		Crawler: CrawlerConfig{
			Filters:       DefaultAttributes(),
			PacingMs:      DefaultPacingMs,
			SummaryLength: DefaultSummaryLength,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	defaultFilters := cfg.Crawler.Filters
	cfg.Crawler.Filters = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Filters named in the file extend the defaults instead of replacing them
	cfg.Crawler.Filters = defaultFilters.Merge(cfg.Crawler.Filters)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Resolve loads the configuration for a command. An empty path falls back to
// DefaultConfigPath when it exists, then to the built-in defaults. Environment
// overrides are applied last.
func Resolve(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			path = DefaultConfigPath
		}
	}

	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides credentials, base URL and log level from the environment.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvUserName); ok {
		c.API.UserName = v
	}

	if v, ok := os.LookupEnv(EnvPassword); ok {
		c.API.Password = v
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if !utils.NewHTTPHelper().IsValidURL(c.API.BaseURL) {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}

	if c.API.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.API.MaxBodyKb < 1 {
		return ErrInvalidMaxBody
	}

	if c.Crawler.PacingMs < 0 {
		return ErrInvalidPacing
	}

	if c.Crawler.SummaryLength < 1 {
		return ErrInvalidSummaryLength
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Parameters returns the configured account as the key-value mapping read by
// ParseCredentials.
func (c *Config) Parameters() map[string]any {
	return map[string]any{
		KeyUserName: c.API.UserName,
		KeyPassword: c.API.Password,
	}
}

// GetTimeout returns the HTTP timeout duration.
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// GetPacing returns the minimum interval between remote calls.
func (c *Config) GetPacing() time.Duration {
	return time.Duration(c.Crawler.PacingMs) * time.Millisecond
}

// GetMaxBodyBytes returns the response body read limit in bytes.
func (c *Config) GetMaxBodyBytes() int64 {
	return int64(c.API.MaxBodyKb) * 1024
}

// String returns a string representation of the config without secrets.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{BaseURL: %s, User: %q, Filters: %v, Pacing: %dms}",
		c.API.BaseURL,
		c.API.UserName,
		map[string]string(c.Crawler.Filters),
		c.Crawler.PacingMs,
	)
}
