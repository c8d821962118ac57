package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_BASE", "")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "4000")
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase mismatch: got %q want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.UpstreamTimeout != 30*time.Second {
		t.Fatalf("UpstreamTimeout mismatch: got %s", cfg.UpstreamTimeout)
	}
	if len(cfg.AllowedOrigins) != len(DefaultAllowedOrigins) {
		t.Fatalf("AllowedOrigins mismatch: %#v", cfg.AllowedOrigins)
	}
	for _, origin := range []string{"http://localhost:5173", "http://127.0.0.1:4000"} {
		if !matchesAny(cfg, origin) {
			t.Fatalf("expected %q to be allowed", origin)
		}
	}
	for _, origin := range []string{"https://localhost:5173", "http://evil.example.com", "http://localhost"} {
		if matchesAny(cfg, origin) {
			t.Fatalf("expected %q to be rejected", origin)
		}
	}
}

func TestLoadConfigStripsAPIBaseTrailingSlashes(t *testing.T) {
	t.Setenv("API_BASE", "https://api.example.com///")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.APIBase != "https://api.example.com" {
		t.Fatalf("APIBase mismatch: got %q", cfg.APIBase)
	}
}

func TestLoadConfigRejectsRelativeAPIBase(t *testing.T) {
	t.Setenv("API_BASE", "not-a-url")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for relative API_BASE")
	}
}

func TestLoadConfigCustomOrigins(t *testing.T) {
	t.Setenv("API_BASE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", ` ^https://donate\.example\.com$ , `)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.AllowedOrigins) != 1 {
		t.Fatalf("AllowedOrigins mismatch: %#v", cfg.AllowedOrigins)
	}
	if !matchesAny(cfg, "https://donate.example.com") {
		t.Fatalf("expected custom origin to be allowed")
	}
	if matchesAny(cfg, "http://localhost:5173") {
		t.Fatalf("default origins should be replaced by the explicit list")
	}
}

func TestLoadConfigRejectsInvalidOriginPattern(t *testing.T) {
	t.Setenv("API_BASE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "([")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}
}

func matchesAny(cfg *Config, origin string) bool {
	for _, re := range cfg.AllowedOrigins {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}
