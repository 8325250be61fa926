package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/justestif/moodtunes/internal/classifier/huggingface"
)

// clearEnv unsets every variable Load reads so host settings do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MOODTUNES_ADDR", "MOODTUNES_LOG_LEVEL", "HF_TOKEN",
		"DATABASE_URL", "SPOTIFY_ID", "SPOTIFY_SECRET",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.HFBaseURL != DefaultHFBaseURL {
		t.Errorf("HFBaseURL = %q, want %q", cfg.HFBaseURL, DefaultHFBaseURL)
	}
	if cfg.TextModel != DefaultTextModel {
		t.Errorf("TextModel = %q, want %q", cfg.TextModel, DefaultTextModel)
	}
	if cfg.ImageModel != DefaultImageModel {
		t.Errorf("ImageModel = %q, want %q", cfg.ImageModel, DefaultImageModel)
	}
	if cfg.TopK != 6 {
		t.Errorf("TopK = %d, want 6", cfg.TopK)
	}
	if cfg.BatchConcurrency != 4 {
		t.Errorf("BatchConcurrency = %d, want 4", cfg.BatchConcurrency)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 10<<20)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.SpotifyEnabled() {
		t.Error("SpotifyEnabled() = true, want false")
	}
}

func TestDefaultsMatchClassifier(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HFBaseURL != huggingface.DefaultBaseURL {
		t.Errorf("HFBaseURL = %q, want %q", cfg.HFBaseURL, huggingface.DefaultBaseURL)
	}
	if cfg.TextModel != huggingface.DefaultTextModel {
		t.Errorf("TextModel = %q, want %q", cfg.TextModel, huggingface.DefaultTextModel)
	}
	if cfg.ImageModel != huggingface.DefaultImageModel {
		t.Errorf("ImageModel = %q, want %q", cfg.ImageModel, huggingface.DefaultImageModel)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
addr: "127.0.0.1:9000"
log_level: debug
log_format: json
top_k: 3
batch_concurrency: 8
max_upload_bytes: 1024
allowed_origins:
  - "http://localhost:3000"
catalog_path: "/etc/moodtunes/playlists.yaml"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.TopK != 3 || cfg.BatchConcurrency != 8 {
		t.Errorf("TopK/BatchConcurrency = %d/%d, want 3/8", cfg.TopK, cfg.BatchConcurrency)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("MaxUploadBytes = %d, want 1024", cfg.MaxUploadBytes)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://localhost:3000"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.CatalogPath != "/etc/moodtunes/playlists.yaml" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
	// untouched keys still get defaults
	if cfg.TextModel != DefaultTextModel {
		t.Errorf("TextModel = %q, want default", cfg.TextModel)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HF_TOKEN", "hf_env")
	t.Setenv("DATABASE_URL", "postgres://localhost/moodtunes")
	t.Setenv("SPOTIFY_ID", "id")
	t.Setenv("SPOTIFY_SECRET", "secret")
	t.Setenv("MOODTUNES_ADDR", ":9999")

	path := writeConfig(t, `
addr: ":7000"
hf_token: "hf_file"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HFToken != "hf_env" {
		t.Errorf("HFToken = %q, want env value", cfg.HFToken)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want env value", cfg.Addr)
	}
	if cfg.DatabaseURL != "postgres://localhost/moodtunes" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if !cfg.SpotifyEnabled() {
		t.Error("SpotifyEnabled() = false, want true")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "bad log level",
			content: "log_level: verbose\n",
			wantErr: "log_level",
		},
		{
			name:    "bad log format",
			content: "log_format: xml\n",
			wantErr: "log_format",
		},
		{
			name:    "negative top_k",
			content: "top_k: -1\n",
			wantErr: "top_k",
		},
		{
			name:    "negative concurrency",
			content: "batch_concurrency: -2\n",
			wantErr: "batch_concurrency",
		},
		{
			name:    "negative upload limit",
			content: "max_upload_bytes: -5\n",
			wantErr: "max_upload_bytes",
		},
		{
			name:    "spotify id without secret",
			content: "",
			env:     map[string]string{"SPOTIFY_ID": "id"},
			wantErr: "spotify_id and spotify_secret",
		},
		{
			name:    "invalid yaml",
			content: "top_k: [not a number\n",
			wantErr: "parse config yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "read config file") {
		t.Errorf("error = %q", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/moodtunes.yaml")
	if got := Path(); got != "/tmp/moodtunes.yaml" {
		t.Errorf("Path() = %q", got)
	}

	t.Setenv(EnvConfigPath, "")
	if got := Path(); got != "" {
		t.Errorf("Path() = %q, want empty", got)
	}
}
