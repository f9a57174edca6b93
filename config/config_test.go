package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so host settings cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range GetEnvVars() {
		t.Setenv(key, "")
	}
}

func TestLoadValidConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8002")
	t.Setenv("ADDRESS", "127.0.0.1")
	t.Setenv("ENV", "dev")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_BASE_URL", "http://backend.internal:9000/")
	t.Setenv("API_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected env dev, got %s", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.APIBaseURL != "http://backend.internal:9000" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %s", cfg.APITimeout)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Errorf("Expected default backend http://localhost:8000, got %s", cfg.APIBaseURL)
	}
	if cfg.HealthProbeInterval != time.Minute {
		t.Errorf("Expected default probe interval 1m, got %s", cfg.HealthProbeInterval)
	}
	if cfg.MaxRequestBody != 65536 {
		t.Errorf("Expected default body limit 65536, got %d", cfg.MaxRequestBody)
	}
}

func TestInvalidValues(t *testing.T) {
	testCases := []struct {
		key      string
		value    string
		expected string
	}{
		{"PORT", "abc", "PORT must be a valid number"},
		{"PORT", "0", "PORT must be between 1 and 65535"},
		{"PORT", "65536", "PORT must be between 1 and 65535"},
		{"PORT", "80", "PORT 80 is privileged"},
		{"ADDRESS", "not-an-ip", "ADDRESS must be a valid IP address"},
		{"ADDRESS", "8.8.8.8", "is a public IP"},
		{"ENV", "qa", "ENV must be one of"},
		{"LOG_LEVEL", "verbose", "LOG_LEVEL must be one of"},
		{"LOG_RETENTION_WEEKS", "0", "LOG_RETENTION_WEEKS must be positive"},
		{"LOG_RETENTION_WEEKS", "53", "LOG_RETENTION_WEEKS is too large"},
		{"MAX_LOG_FILE_SIZE", "1024", "MAX_LOG_FILE_SIZE is too small"},
		{"MAX_REQUEST_BODY", "-1", "MAX_REQUEST_BODY must be positive"},
		{"MAX_HEADER_SIZE", "209715200", "MAX_HEADER_SIZE is too large"},
		{"API_BASE_URL", "ftp://backend", "must use http or https"},
		{"API_BASE_URL", "http://", "must include a host"},
		{"API_BASE_URL", "http://backend?x=1", "must not carry a query"},
		{"API_TIMEOUT", "soon", "API_TIMEOUT must be a duration"},
		{"API_TIMEOUT", "-1s", "invalid API_TIMEOUT: must be positive"},
		{"HEALTH_PROBE_INTERVAL", "48h", "invalid HEALTH_PROBE_INTERVAL: is too large"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%q", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %q", tc.expected, err.Error())
			}
		})
	}
}

func TestEnvIsCaseInsensitive(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "PROD")
	t.Setenv("LOG_LEVEL", "WARN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Env != EnvProduction || cfg.LogLevel != "warn" {
		t.Errorf("Expected prod/warn, got %s/%s", cfg.Env, cfg.LogLevel)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	// No .env file is fine
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("Expected missing .env to be tolerated, got %v", err)
	}

	os.Unsetenv("API_BASE_URL")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("API_BASE_URL=http://10.0.0.5:8000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIBaseURL != "http://10.0.0.5:8000" {
		t.Errorf("Expected value from .env, got %s (wd %s)", cfg.APIBaseURL, wd)
	}
}
