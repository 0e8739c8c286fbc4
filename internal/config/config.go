// Package config defines service configuration and how it is loaded.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration shared by the server and the batch tool.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":5002".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, receives a copy of every log line.
	LogFile string `koanf:"log_file"`

	// GeminiAPIKey authenticates calls to the model API.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// Model is the Gemini model identifier.
	Model string `koanf:"model"`

	Temperature     float64 `koanf:"temperature"`
	TopP            float64 `koanf:"top_p"`
	MaxOutputTokens int     `koanf:"max_output_tokens"`

	// StaticDir holds the built frontend. Empty disables static serving.
	StaticDir string `koanf:"static_dir"`

	// StepsDir is the directory the batch tool walks for .wav files.
	StepsDir string `koanf:"steps_dir"`

	ShutdownTimeoutSeconds int `koanf:"shutdown_timeout_seconds"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:                   ":5002",
		LogLevel:               "info",
		LogFile:                "api.log",
		Model:                  "gemini-2.5-pro",
		Temperature:            0.7,
		TopP:                   0.95,
		MaxOutputTokens:        8192,
		StaticDir:              "static",
		StepsDir:               "steps",
		ShutdownTimeoutSeconds: 30,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.Model) == "":
		return fmt.Errorf("%w: model must not be empty", ErrInvalidConfig)
	case c.Temperature < 0 || c.Temperature > 2:
		return fmt.Errorf("%w: temperature must be within [0, 2], got %v", ErrInvalidConfig, c.Temperature)
	case c.TopP < 0 || c.TopP > 1:
		return fmt.Errorf("%w: top_p must be within [0, 1], got %v", ErrInvalidConfig, c.TopP)
	case c.MaxOutputTokens <= 0:
		return fmt.Errorf("%w: max_output_tokens must be positive", ErrInvalidConfig)
	case c.ShutdownTimeoutSeconds <= 0:
		return fmt.Errorf("%w: shutdown_timeout_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}

// GeminiConfigured reports whether an API key is present.
func (c *Config) GeminiConfigured() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
