package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

var (
	ErrInvalidPort      = errors.New("config: invalid port")
	ErrInvalidLogLevel  = errors.New("config: invalid log level")
	ErrInvalidGinMode   = errors.New("config: invalid gin mode")
	ErrInvalidRetention = errors.New("config: retention must be at least one month")
	ErrInvalidSchedule  = errors.New("config: invalid cleanup schedule")
	ErrInvalidRate      = errors.New("config: contact rate must be positive")
	ErrIncompleteSMTP   = errors.New("config: SMTP_HOST set without SMTP_USER, SMTP_PASS or CONTACT_TO")
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	GinMode    string `env:"GIN_MODE" envDefault:"release"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"LOG_FILE"`
	StaticDir  string `env:"STATIC_DIR" envDefault:"./static"`
	BaseURL    string `env:"BASE_URL"`
	TrustProxy bool   `env:"TRUST_PROXY" envDefault:"false"`

	DatabasePath     string `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	HashSalt         string `env:"HASH_SALT"`
	RetentionMonths  int    `env:"ANALYTICS_RETENTION_MONTHS" envDefault:"12"`
	CleanupSchedule  string `env:"CLEANUP_SCHEDULE" envDefault:"0 0 3 * * *"`
	TrackingDisabled bool   `env:"TRACKING_DISABLED" envDefault:"false"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	SMTPHost             string `env:"SMTP_HOST"`
	SMTPPort             int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser             string `env:"SMTP_USER"`
	SMTPPass             string `env:"SMTP_PASS"`
	SMTPFrom             string `env:"SMTP_FROM"`
	ContactTo            string `env:"CONTACT_TO"`
	ContactRatePerMinute int    `env:"CONTACT_RATE_PER_MINUTE" envDefault:"3"`

	PDFEnabled bool   `env:"PDF_ENABLED" envDefault:"false"`
	ChromePath string `env:"CHROME_PATH"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load parses the process environment. A .env file, if any, is loaded by
// main before this runs.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Port)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidGinMode, c.GinMode)
	}
	if c.RetentionMonths < 1 {
		return ErrInvalidRetention
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.CleanupSchedule); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	if c.ContactRatePerMinute < 1 {
		return ErrInvalidRate
	}
	if c.SMTPHost != "" && (c.SMTPUser == "" || c.SMTPPass == "" || c.ContactTo == "") {
		return ErrIncompleteSMTP
	}
	if c.SMTPPort < 1 || c.SMTPPort > 65535 {
		return fmt.Errorf("%w: SMTP_PORT %d", ErrInvalidPort, c.SMTPPort)
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Port }

// MailEnabled reports whether the contact form can deliver messages.
func (c *Config) MailEnabled() bool { return c.SMTPHost != "" }

// AdminEnabled reports whether admin credentials were configured. Without
// them the admin routes are not mounted.
func (c *Config) AdminEnabled() bool { return c.AdminUsername != "" && c.AdminPassword != "" }

// SenderAddress is the From address for outgoing mail.
func (c *Config) SenderAddress() string {
	if c.SMTPFrom != "" {
		return c.SMTPFrom
	}
	return c.SMTPUser
}
