package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.FilesDir != "files" {
		t.Errorf("expected default files dir %q, got %q", "files", cfg.FilesDir)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("expected 30s fetch timeout, got %v", cfg.FetchTimeout)
	}
	if cfg.ProgramsCacheTTL != 6*time.Hour {
		t.Errorf("expected 6h programs TTL, got %v", cfg.ProgramsCacheTTL)
	}
	if cfg.CurriculumCacheTTL != 12*time.Hour {
		t.Errorf("expected 12h curriculum TTL, got %v", cfg.CurriculumCacheTTL)
	}
	if cfg.DefaultCacheTTL != time.Hour {
		t.Errorf("expected 1h default TTL, got %v", cfg.DefaultCacheTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FILES_DIR", "/tmp/curricula")
	t.Setenv("FETCH_TIMEOUT", "10s")
	t.Setenv("FETCH_MAX_RETRIES", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.FilesDir != "/tmp/curricula" {
		t.Errorf("expected files dir override, got %q", cfg.FilesDir)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.FetchTimeout)
	}
	if cfg.FetchMaxRetries != 5 {
		t.Errorf("expected 5 retries, got %d", cfg.FetchMaxRetries)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("expected fallback to 30s, got %v", cfg.FetchTimeout)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty files dir", func(c *Config) { c.FilesDir = "" }, true},
		{"zero fetch timeout", func(c *Config) { c.FetchTimeout = 0 }, true},
		{"negative retries", func(c *Config) { c.FetchMaxRetries = -1 }, true},
		{"zero programs ttl", func(c *Config) { c.ProgramsCacheTTL = 0 }, true},
		{"zero curriculum ttl", func(c *Config) { c.CurriculumCacheTTL = 0 }, true},
		{"sentry token without host", func(c *Config) {
			c.SentryToken = "tok"
			c.SentryHost = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{
				LogLevel:           "info",
				FilesDir:           "files",
				FetchTimeout:       30 * time.Second,
				FetchMaxRetries:    3,
				ProgramsCacheTTL:   6 * time.Hour,
				CurriculumCacheTTL: 12 * time.Hour,
				DefaultCacheTTL:    time.Hour,
				SentryHost:         "errors.betterstack.com",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
