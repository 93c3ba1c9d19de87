package openrouter

import "time"

// Config wires the OpenRouter chat/completions endpoint.
type Config struct {
	BaseURL string // e.g. https://openrouter.ai/api/v1
	Model   string
	APIKey  string
	Referer string // HTTP-Referer header OpenRouter asks clients to send
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = "https://openrouter.ai/api/v1"
	}
	if c.Model == "" {
		c.Model = "google/gemini-pro"
	}
	if c.Referer == "" {
		c.Referer = "http://localhost"
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}
