package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a minimal valid configuration.
const validConfigYAML = `
api:
  base_url: "https://api.example.com"
  user_name: "reporter"
  password: "secret"
  timeout_sec: 10
crawler:
  pacing_ms: 0
  summary_length: 120
  filters:
    limit: 20
    filter_category: "2"
logging:
  level: "debug"
  format: "json"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.UserName != "reporter" {
		t.Errorf("Expected user 'reporter', got '%s'", cfg.API.UserName)
	}

	if cfg.GetTimeout() != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %v", cfg.GetTimeout())
	}

	if cfg.GetPacing() != 0 {
		t.Errorf("Expected pacing 0, got %v", cfg.GetPacing())
	}

	// Unset sections keep their defaults
	if cfg.API.MaxBodyKb != DefaultMaxBodyKb {
		t.Errorf("Expected default max body, got %d", cfg.API.MaxBodyKb)
	}

	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Expected default server addr, got %s", cfg.Server.Addr)
	}
}

func TestLoadConfig_FiltersExtendDefaults(t *testing.T) {
	cfg, err := LoadConfig(createTempConfigFile(t, validConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := map[string]string{
		FilterLanguage:    "1",
		FilterType:        "1",
		FilterLimit:       "20",
		"filter_category": "2",
	}

	if len(cfg.Crawler.Filters) != len(want) {
		t.Fatalf("Expected %d filters, got %v", len(want), cfg.Crawler.Filters)
	}

	for k, v := range want {
		if cfg.Crawler.Filters[k] != v {
			t.Errorf("Filter %s = %q, want %q", k, cfg.Crawler.Filters[k], v)
		}
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	configPath := createTempConfigFile(t, "logging:\n  level: verbose\n")

	_, err := LoadConfig(configPath)
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("Expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"Defaults are valid", func(c *Config) {}, nil},
		{"Missing base URL", func(c *Config) { c.API.BaseURL = "" }, ErrMissingBaseURL},
		{"Relative base URL", func(c *Config) { c.API.BaseURL = "api.aa.com.tr" }, ErrInvalidBaseURL},
		{"Zero timeout", func(c *Config) { c.API.TimeoutSec = 0 }, ErrInvalidTimeout},
		{"Zero body limit", func(c *Config) { c.API.MaxBodyKb = 0 }, ErrInvalidMaxBody},
		{"Negative pacing", func(c *Config) { c.Crawler.PacingMs = -1 }, ErrInvalidPacing},
		{"Zero summary length", func(c *Config) { c.Crawler.SummaryLength = 0 }, ErrInvalidSummaryLength},
		{"Unknown log level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
		{"Unknown log format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv(EnvUserName, "env-user")
	t.Setenv(EnvPassword, "env-pass")
	t.Setenv(EnvBaseURL, "http://localhost:9999")
	t.Setenv(EnvLogLevel, "warn")

	cfg := Default()
	cfg.ApplyEnv()

	params := cfg.Parameters()
	if params[KeyUserName] != "env-user" || params[KeyPassword] != "env-pass" {
		t.Errorf("Parameters() = %v, want env values", params)
	}

	if cfg.API.BaseURL != "http://localhost:9999" {
		t.Errorf("BaseURL = %s, want env override", cfg.API.BaseURL)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %s, want warn", cfg.Logging.Level)
	}
}

func TestConfig_GetMaxBodyBytes(t *testing.T) {
	cfg := Default()
	cfg.API.MaxBodyKb = 2

	if got := cfg.GetMaxBodyBytes(); got != 2048 {
		t.Errorf("GetMaxBodyBytes() = %d, want 2048", got)
	}
}

func TestConfig_String(t *testing.T) {
	cfg := Default()
	cfg.API.Password = "do-not-print"

	str := cfg.String()
	if str == "" {
		t.Error("Expected non-empty string representation")
	}

	if strings.Contains(str, "do-not-print") {
		t.Error("String() must not include the password")
	}
}

func TestResolve_ExplicitFileWithEnv(t *testing.T) {
	path := createTempConfigFile(t, `
api:
  base_url: "http://file.example.com"
  user_name: "file-user"
`)
	t.Setenv(EnvUserName, "env-user")

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://file.example.com" {
		t.Errorf("BaseURL = %s, want file value", cfg.API.BaseURL)
	}

	if cfg.API.UserName != "env-user" {
		t.Errorf("UserName = %s, want env override", cfg.API.UserName)
	}
}

func TestResolve_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want default", cfg.API.BaseURL)
	}
}

func TestResolve_InvalidEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvLogLevel, "loud")

	if _, err := Resolve(""); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Resolve() error = %v, want ErrInvalidLogLevel", err)
	}
}
