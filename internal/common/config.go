package common

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "SYLLABUS_TRACKER_CONFIG"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Extract  ExtractConfig  `yaml:"extract"`
	LLM      LLMConfig      `yaml:"llm"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds cache-store configuration. Driver selects the
// backing store: "postgres" (DSN required) or "sqlite" (Path, defaults to an
// in-memory database when empty).
type DatabaseConfig struct {
	Driver           string        `yaml:"driver"`
	DSN              string        `yaml:"dsn"`
	Path             string        `yaml:"path"`
	MaxConns         int32         `yaml:"maxConns"`
	MinConns         int32         `yaml:"minConns"`
	MaxConnLifetime  time.Duration `yaml:"maxConnLifetime"`
	MaxConnIdleTime  time.Duration `yaml:"maxConnIdleTime"`
	DialTimeout      time.Duration `yaml:"dialTimeout"`
	StatementTimeout time.Duration `yaml:"statementTimeout"`
}

// ExtractConfig holds pipeline behavior flags.
type ExtractConfig struct {
	// Backend selects the extraction strategy: "local" or "remote".
	Backend string `yaml:"backend"`
	// FallbackToLocal reruns the local extractor when the remote backend fails.
	FallbackToLocal bool `yaml:"fallbackToLocal"`
	// DefaultYear resolves bare month-day dates; 0 means the current year.
	DefaultYear int `yaml:"defaultYear"`
}

// LLMConfig defines how to contact the remote extraction service.
type LLMConfig struct {
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"apiKey"`
	Referer     string        `yaml:"referer"`
	Timeout     time.Duration `yaml:"timeout"`
}

// LoadConfig reads YAML configuration (if SYLLABUS_TRACKER_CONFIG points at
// a file) and applies environment overrides on top of defaults.
func LoadConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Addr: ":5000",
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			MaxConns:        20,
			MinConns:        5,
			MaxConnLifetime: 30 * time.Minute,
			MaxConnIdleTime: 5 * time.Minute,
			DialTimeout:     3 * time.Second,
		},
		Extract: ExtractConfig{
			Backend:         "local",
			FallbackToLocal: true,
		},
		LLM: LLMConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "google/gemini-pro",
			Referer: "http://localhost",
			Timeout: 60 * time.Second,
		},
	}

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(raw, cfg)
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	c.Server.Addr = getEnv("HTTP_ADDR", c.Server.Addr)
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DB_URL", c.Database.DSN)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Extract.Backend = getEnv("EXTRACT_BACKEND", c.Extract.Backend)
	c.Extract.FallbackToLocal = getEnvAsBool("USE_LOCAL_FALLBACK", c.Extract.FallbackToLocal)
	c.Extract.DefaultYear = getEnvAsInt("EXTRACT_DEFAULT_YEAR", c.Extract.DefaultYear)
	c.LLM.BaseURL = getEnv("OPENROUTER_URL", c.LLM.BaseURL)
	c.LLM.Model = getEnv("OPENROUTER_MODEL", c.LLM.Model)
	c.LLM.APIKey = getEnv("OPENROUTER_API_KEY", c.LLM.APIKey)
	c.LLM.Timeout = getEnvAsDuration("OPENROUTER_TIMEOUT", c.LLM.Timeout)
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required for the postgres driver", ErrInvalidInput)
	}
	if c.Extract.Backend != "local" && c.Extract.Backend != "remote" {
		return NewAppError("CONFIG_ERROR", "EXTRACT_BACKEND must be local or remote", ErrInvalidInput)
	}
	if c.Extract.Backend == "remote" && c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENROUTER_API_KEY is required for the remote backend", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
