package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Log.Format != LogConsole {
		t.Errorf("expected default log format %q, got %q", LogConsole, cfg.Log.Format)
	}
	if cfg.Database.Path != "data/caravansite.db" {
		t.Errorf("expected default database path, got %q", cfg.Database.Path)
	}
	if cfg.RateLimit.PerMinute != 10 {
		t.Errorf("expected default rate limit 10, got %d", cfg.RateLimit.PerMinute)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.caravansite.yml")

	original := DefaultConfig()
	original.Site.Name = "Outback Vans"
	original.Site.BaseURL = "https://outback.example.com"
	original.Server.Port = 9090
	original.Log.Format = LogJSON
	original.Notifications.SalesEmail = "sales@example.com"
	original.Server.TrustedProxies = []string{"10.0.0.0/8", "127.0.0.1"}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Site.Name != original.Site.Name {
		t.Errorf("site.name: got %q, want %q", loaded.Site.Name, original.Site.Name)
	}
	if loaded.Site.BaseURL != original.Site.BaseURL {
		t.Errorf("site.base_url: got %q, want %q", loaded.Site.BaseURL, original.Site.BaseURL)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("server.port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Log.Format != LogJSON {
		t.Errorf("log.format: got %q, want %q", loaded.Log.Format, LogJSON)
	}
	if loaded.Notifications.SalesEmail != "sales@example.com" {
		t.Errorf("notifications.sales_email: got %q", loaded.Notifications.SalesEmail)
	}
	if len(loaded.Server.TrustedProxies) != 2 || loaded.Server.TrustedProxies[0] != "10.0.0.0/8" {
		t.Errorf("server.trusted_proxies: got %v", loaded.Server.TrustedProxies)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("CARAVANSITE_SERVER_PORT", "7070")
	t.Setenv("CARAVANSITE_SITE_BASE_URL", "https://vans.example.com")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("env override failed: got port %d, want 7070", loaded.Server.Port)
	}
	if loaded.Site.BaseURL != "https://vans.example.com" {
		t.Errorf("env override failed: got base_url %q", loaded.Site.BaseURL)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CARAVANSITE_SERVER_PORT", "server.port"},
		{"CARAVANSITE_NOTIFICATIONS_SENDGRID_API_KEY", "notifications.sendgrid_api_key"},
		{"CARAVANSITE_RATELIMIT_PER_MINUTE", "ratelimit.per_minute"},
		{"CARAVANSITE_DEBUG", "debug"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty site name", func(c *Config) { c.Site.Name = "" }},
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"short jwt secret", func(c *Config) { c.Admin.JWTSecret = "short" }},
		{"zero token ttl", func(c *Config) { c.Admin.TokenTTLHours = 0 }},
		{"sendgrid without sender", func(c *Config) { c.Notifications.SendGridAPIKey = "SG.x" }},
		{"negative rate limit", func(c *Config) { c.RateLimit.PerMinute = -1 }},
		{"bad trusted proxy", func(c *Config) { c.Server.TrustedProxies = []string{"proxy.local"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
