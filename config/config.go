// Package config handles configuration loading and saving.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/linanwx/supportchat/logger"
)

const (
	configFileName = "config.yaml"
	configDirName  = ".supportchat"

	// EnvAPIBase overrides api.baseURL when set.
	EnvAPIBase = "SUPPORTCHAT_API_BASE"

	EnvGroqAPIKey      = "GROQ_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"

	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

var configDirOverride string

// SetConfigDir overrides the config directory for the current process.
// Empty value clears the override.
func SetConfigDir(dir string) {
	configDirOverride = strings.TrimSpace(dir)
}

// Config is the root configuration structure.
type Config struct {
	API       APIConfig       `json:"api" yaml:"api"`
	UI        UIConfig        `json:"ui,omitempty" yaml:"ui,omitempty"`
	DevServer DevServerConfig `json:"devServer,omitempty" yaml:"devServer,omitempty"`
	Logging   LoggingConfig   `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// APIConfig points the widget at the chat service.
type APIConfig struct {
	BaseURL string `json:"baseURL" yaml:"baseURL" validate:"required,url"`
}

// UIConfig contains display options.
type UIConfig struct {
	Prompt    string        `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	ShowLogs  bool          `json:"showLogs,omitempty" yaml:"showLogs,omitempty"`   // show the log panel in the TUI
	BannerTTL time.Duration `json:"bannerTTL,omitempty" yaml:"bannerTTL,omitempty" validate:"gte=0"` // defaults to 5s
}

// DevServerConfig configures the local /chat endpoint.
type DevServerConfig struct {
	Addr string    `json:"addr,omitempty" yaml:"addr,omitempty" validate:"omitempty,hostname_port"`
	LLM  LLMConfig `json:"llm,omitempty" yaml:"llm,omitempty"`
}

// LLMConfig selects the model behind the dev server. Without an API key the
// dev server answers from canned replies.
type LLMConfig struct {
	Provider    string  `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=groq anthropic"`
	Model       string  `json:"model,omitempty" yaml:"model,omitempty"`
	APIBase     string  `json:"apiBase,omitempty" yaml:"apiBase,omitempty" validate:"omitempty,url"`
	APIKey      string  `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"gte=0,lte=2"`
}

// GetAPIKey returns the configured key, falling back to the provider's
// environment variable (GROQ_API_KEY or ANTHROPIC_API_KEY).
func (c LLMConfig) GetAPIKey() string {
	if key := strings.TrimSpace(c.APIKey); key != "" {
		return key
	}
	if c.Provider == ProviderAnthropic {
		return strings.TrimSpace(os.Getenv(EnvAnthropicAPIKey))
	}
	return strings.TrimSpace(os.Getenv(EnvGroqAPIKey))
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	Stdout  bool   `json:"stdout,omitempty" yaml:"stdout,omitempty"` // log to the console
	File    string `json:"file,omitempty" yaml:"file,omitempty"`     // relative to the config dir
}

// BuildLoggerConfig converts the logging section for logger.Init.
func (c *Config) BuildLoggerConfig() logger.Config {
	enabled := true
	if c.Logging.Enabled != nil {
		enabled = *c.Logging.Enabled
	}
	return logger.Config{
		Enabled: enabled,
		Level:   c.Logging.Level,
		Stdout:  c.Logging.Stdout,
		File:    c.Logging.File,
	}
}
