// Package config loads moodtunes settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/justestif/moodtunes/internal/classifier/huggingface"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "MOODTUNES_CONFIG"

// Default values.
const (
	DefaultAddr             = ":8080"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultHFBaseURL        = huggingface.DefaultBaseURL
	DefaultTextModel        = huggingface.DefaultTextModel
	DefaultImageModel       = huggingface.DefaultImageModel
	DefaultTopK             = 6
	DefaultBatchConcurrency = 4
	DefaultMaxUploadBytes   = 10 << 20
)

// Config holds all application configuration.
type Config struct {
	Addr             string   `yaml:"addr"`
	LogLevel         string   `yaml:"log_level"`
	LogFormat        string   `yaml:"log_format"`
	HFBaseURL        string   `yaml:"hf_base_url"`
	HFToken          string   `yaml:"hf_token"`
	TextModel        string   `yaml:"text_model"`
	ImageModel       string   `yaml:"image_model"`
	TopK             int      `yaml:"top_k"`
	BatchConcurrency int      `yaml:"batch_concurrency"`
	MaxUploadBytes   int64    `yaml:"max_upload_bytes"`
	AllowedOrigins   []string `yaml:"allowed_origins"`
	CatalogPath      string   `yaml:"catalog_path"`
	DatabaseURL      string   `yaml:"database_url"`
	SpotifyID        string   `yaml:"spotify_id"`
	SpotifySecret    string   `yaml:"spotify_secret"`
}

// Load reads configuration from path, applies defaults and environment
// overrides, and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Path returns the config file path from the environment, or "" when unset.
func Path() string {
	return os.Getenv(EnvConfigPath)
}

// SpotifyEnabled reports whether catalog verification credentials are set.
func (c *Config) SpotifyEnabled() bool {
	return c.SpotifyID != "" && c.SpotifySecret != ""
}

func applyDefaults(cfg *Config) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.HFBaseURL == "" {
		cfg.HFBaseURL = DefaultHFBaseURL
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.TopK == 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.BatchConcurrency == 0 {
		cfg.BatchConcurrency = DefaultBatchConcurrency
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("MOODTUNES_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("MOODTUNES_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HF_TOKEN"); v != "" {
		cfg.HFToken = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("SPOTIFY_ID"); v != "" {
		cfg.SpotifyID = v
	}
	if v := os.Getenv("SPOTIFY_SECRET"); v != "" {
		cfg.SpotifySecret = v
	}
}

func validate(cfg *Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.TopK < 0 {
		return fmt.Errorf("top_k must be positive, got %d", cfg.TopK)
	}
	if cfg.BatchConcurrency < 0 {
		return fmt.Errorf("batch_concurrency must be positive, got %d", cfg.BatchConcurrency)
	}
	if cfg.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", cfg.MaxUploadBytes)
	}
	if (cfg.SpotifyID == "") != (cfg.SpotifySecret == "") {
		return errors.New("spotify_id and spotify_secret must be set together")
	}
	return nil
}
