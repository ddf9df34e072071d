package config

// DefaultConfig returns a Config with sensible defaults.
// The JWT secret is a development placeholder; init replaces it.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name:    "Coastline Caravans",
			BaseURL: "http://localhost:8080",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "data/caravansite.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogConsole,
		},
		Admin: AdminConfig{
			JWTSecret:     "dev-secret-change-me-please",
			TokenTTLHours: 12,
		},
		RateLimit: RateLimitConfig{
			PerMinute: 10,
		},
	}
}
