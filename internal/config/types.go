package config

// LogFormat selects the zap encoder.
type LogFormat string

const (
	LogJSON    LogFormat = "json"
	LogConsole LogFormat = "console"
)

// Config is the top-level caravansite configuration, corresponding to .caravansite.yml.
type Config struct {
	Site          SiteConfig          `yaml:"site" koanf:"site"`
	Server        ServerConfig        `yaml:"server" koanf:"server"`
	Database      DatabaseConfig      `yaml:"database" koanf:"database"`
	Log           LogConfig           `yaml:"log" koanf:"log"`
	Admin         AdminConfig         `yaml:"admin" koanf:"admin"`
	Notifications NotificationsConfig `yaml:"notifications" koanf:"notifications"`
	RateLimit     RateLimitConfig     `yaml:"ratelimit" koanf:"ratelimit"`
}

// SiteConfig describes the public site.
type SiteConfig struct {
	Name    string `yaml:"name" koanf:"name"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	// TrustedProxies lists the addresses or CIDR ranges of reverse proxies
	// whose X-Forwarded-For and X-Real-IP headers name the client.
	TrustedProxies []string `yaml:"trusted_proxies" koanf:"trusted_proxies"`
}

// DatabaseConfig points at the SQLite file backing every collection.
type DatabaseConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level"`
	Format LogFormat `yaml:"format" koanf:"format"`
}

// AdminConfig configures back-office authentication.
type AdminConfig struct {
	JWTSecret     string `yaml:"jwt_secret" koanf:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours" koanf:"token_ttl_hours"`
}

// NotificationsConfig configures new-lead alerts. Empty values disable a channel.
type NotificationsConfig struct {
	WebhookURL     string `yaml:"webhook_url" koanf:"webhook_url"`
	SendGridAPIKey string `yaml:"sendgrid_api_key" koanf:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email" koanf:"from_email"`
	SalesEmail     string `yaml:"sales_email" koanf:"sales_email"`
}

// RateLimitConfig bounds public form submissions per client IP.
type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute" koanf:"per_minute"`
}
