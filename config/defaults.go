package config

import "time"

const (
	// DefaultAPIBaseURL is the hosted support service the widget talks to.
	DefaultAPIBaseURL = "https://ecommerce-support-multi-agent.onrender.com/"

	defaultPrompt        = "you> "
	defaultBannerTTL     = 5000 * time.Millisecond
	defaultDevServerAddr = "127.0.0.1:8000"

	defaultLLMProvider    = ProviderGroq
	defaultLLMTemperature = 0.2
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
		},
		UI: UIConfig{
			Prompt:    defaultPrompt,
			BannerTTL: defaultBannerTTL,
		},
		DevServer: DevServerConfig{
			Addr: defaultDevServerAddr,
			LLM: LLMConfig{
				Provider:    defaultLLMProvider,
				Temperature: defaultLLMTemperature,
			},
		},
		Logging: defaultLoggingConfig(),
	}
}

func defaultLoggingConfig() LoggingConfig {
	enabled := true
	return LoggingConfig{
		Enabled: &enabled,
		Level:   "info",
		Stdout:  false,
		File:    "logs/supportchat.log",
	}
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.UI.Prompt == "" {
		c.UI.Prompt = defaultPrompt
	}
	if c.UI.BannerTTL <= 0 {
		c.UI.BannerTTL = defaultBannerTTL
	}
	if c.DevServer.Addr == "" {
		c.DevServer.Addr = defaultDevServerAddr
	}
	if c.DevServer.LLM.Provider == "" {
		c.DevServer.LLM.Provider = defaultLLMProvider
	}
	if c.DevServer.LLM.Temperature == 0 {
		c.DevServer.LLM.Temperature = defaultLLMTemperature
	}

	def := defaultLoggingConfig()
	if c.Logging == (LoggingConfig{}) {
		c.Logging = def
		return
	}
	if c.Logging.Enabled == nil {
		c.Logging.Enabled = def.Enabled
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Level
	}
	if c.Logging.File == "" && !c.Logging.Stdout {
		c.Logging.File = def.File
	}
}
