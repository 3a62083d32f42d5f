package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("expected base_url http://localhost:8080, got %s", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 15 {
		t.Errorf("expected timeout_seconds 15, got %d", cfg.API.TimeoutSeconds)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("expected default base_url, got %s", cfg.API.BaseURL)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[api]
base_url = "https://school.example.com"
token = "abc123"
timeout_seconds = 30

[storage]
cache_path = "/tmp/drafts.db"
log_path = "/tmp/aula.log"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://school.example.com" {
		t.Errorf("expected base_url https://school.example.com, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Token != "abc123" {
		t.Errorf("expected token abc123, got %s", cfg.API.Token)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("expected timeout_seconds 30, got %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Storage.CachePath != "/tmp/drafts.db" {
		t.Errorf("expected cache_path /tmp/drafts.db, got %s", cfg.Storage.CachePath)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[api]
base_url = "http://file.example.com"
timeout_seconds = 10

[storage]
cache_path = "/tmp/file.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set env vars
	t.Setenv("AULA_API_BASE_URL", "http://env.example.com")
	t.Setenv("AULA_API_TOKEN", "env-token")
	t.Setenv("AULA_API_TIMEOUT_SECONDS", "45")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.API.BaseURL != "http://env.example.com" {
		t.Errorf("expected base_url from env, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Token != "env-token" {
		t.Errorf("expected token from env, got %s", cfg.API.Token)
	}
	if cfg.API.TimeoutSeconds != 45 {
		t.Errorf("expected timeout_seconds 45 from env, got %d", cfg.API.TimeoutSeconds)
	}
	// File value should be kept when no env override
	if cfg.Storage.CachePath != "/tmp/file.db" {
		t.Errorf("expected cache_path from file, got %s", cfg.Storage.CachePath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "empty base_url",
			mutate:  func(cfg *Config) { cfg.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "relative base_url",
			mutate:  func(cfg *Config) { cfg.API.BaseURL = "school.example.com" },
			wantErr: true,
		},
		{
			name:    "non-http scheme",
			mutate:  func(cfg *Config) { cfg.API.BaseURL = "ftp://school.example.com" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(cfg *Config) { cfg.API.TimeoutSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *Config) { cfg.API.TimeoutSeconds = -5 },
			wantErr: true,
		},
		{
			name:    "empty cache_path",
			mutate:  func(cfg *Config) { cfg.Storage.CachePath = "" },
			wantErr: true,
		},
		{
			name:    "empty log_path",
			mutate:  func(cfg *Config) { cfg.Storage.LogPath = "" },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	cfg.API.TimeoutSeconds = 30

	if got := cfg.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/drafts.db", filepath.Join(home, "drafts.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://console.school.example.com"
	cfg.API.TimeoutSeconds = 20
	cfg.UI.Theme = "mocha"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.API.BaseURL != "https://console.school.example.com" {
		t.Errorf("expected saved base_url, got %s", loaded.API.BaseURL)
	}
	if loaded.API.TimeoutSeconds != 20 {
		t.Errorf("expected timeout_seconds 20, got %d", loaded.API.TimeoutSeconds)
	}
	if loaded.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", loaded.UI.Theme)
	}
}
