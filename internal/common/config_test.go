package common

import (
	"os"
	"testing"
	"time"
)

func clearEnv() {
	for _, key := range []string{
		"SYLLABUS_TRACKER_CONFIG", "HTTP_ADDR", "DB_DRIVER", "DB_URL", "DB_PATH",
		"EXTRACT_BACKEND", "USE_LOCAL_FALLBACK", "EXTRACT_DEFAULT_YEAR",
		"OPENROUTER_URL", "OPENROUTER_MODEL", "OPENROUTER_API_KEY", "OPENROUTER_TIMEOUT",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv()

	cfg := LoadConfig()

	if cfg.Server.Addr != ":5000" {
		t.Fatalf("expected default addr :5000, got %q", cfg.Server.Addr)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected default driver sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Extract.Backend != "local" {
		t.Fatalf("expected default backend local, got %q", cfg.Extract.Backend)
	}
	if !cfg.Extract.FallbackToLocal {
		t.Fatal("expected FallbackToLocal=true by default")
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Fatalf("expected default timeout 60s, got %v", cfg.LLM.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("EXTRACT_BACKEND", "remote")
	os.Setenv("OPENROUTER_API_KEY", "sk-test")
	os.Setenv("EXTRACT_DEFAULT_YEAR", "2026")
	os.Setenv("USE_LOCAL_FALLBACK", "false")
	defer clearEnv()

	cfg := LoadConfig()

	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %q", cfg.Server.Addr)
	}
	if cfg.Extract.Backend != "remote" || cfg.LLM.APIKey != "sk-test" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Extract.DefaultYear != 2026 {
		t.Fatalf("expected default year 2026, got %d", cfg.Extract.DefaultYear)
	}
	if cfg.Extract.FallbackToLocal {
		t.Fatal("expected FallbackToLocal=false")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config should validate, got %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	clearEnv()

	cfg := LoadConfig()
	cfg.Extract.Backend = "remote"
	cfg.LLM.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for remote backend without API key")
	}

	cfg = LoadConfig()
	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for postgres driver without DSN")
	}

	cfg = LoadConfig()
	cfg.Extract.Backend = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
