package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported storage backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DataBackend string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	// TokenTTL of zero issues tokens without expiry.
	TokenTTL    time.Duration
	CORSOrigins []string
	APIBasePath string
	LogLevel    string
	LogFormat   string
	Location    *time.Location

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	SummaryConcurrency int
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:         fallback(os.Getenv("PORT"), "8080"),
		DataBackend:  strings.ToLower(fallback(os.Getenv("DATA_BACKEND"), BackendPostgres)),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:    fallback(os.Getenv("JWT_ISSUER"), "finance-tracker"),
		TokenTTL:     time.Duration(atoi(os.Getenv("TOKEN_TTL_MINUTES"), 0)) * time.Minute,
		CORSOrigins:  parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		APIBasePath:  normalizeBasePath(fallback(os.Getenv("API_BASE_PATH"), "/api/v1")),
		LogLevel:     strings.ToLower(fallback(os.Getenv("LOG_LEVEL"), "info")),
		LogFormat:    strings.ToLower(fallback(os.Getenv("LOG_FORMAT"), "text")),
		SMTPHost:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:     atoi(os.Getenv("SMTP_PORT"), 587),
		SMTPUsername: strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     fallback(os.Getenv("MAIL_FROM"), "no-reply@financetracker.com"),
		AMQPURL:      strings.TrimSpace(os.Getenv("AMQP_URL")),
		AMQPExchange: fallback(os.Getenv("AMQP_EXCHANGE"), "finance"),
		AMQPQueue:    fallback(os.Getenv("AMQP_QUEUE"), "summary-emails"),

		SummaryConcurrency: atoi(os.Getenv("SUMMARY_CONCURRENCY"), 4),
	}

	loc, err := time.LoadLocation(fallback(os.Getenv("TIMEZONE"), "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required settings and value ranges.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port '%s': must be a number", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	switch c.DataBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown DATA_BACKEND %q: must be postgres or memory", c.DataBackend)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL < 0 {
		return errors.New("TOKEN_TTL_MINUTES must not be negative")
	}
	if c.SMTPHost != "" && (c.SMTPPort < 1 || c.SMTPPort > 65535) {
		return fmt.Errorf("invalid SMTP_PORT %d", c.SMTPPort)
	}
	if c.SummaryConcurrency < 1 {
		return errors.New("SUMMARY_CONCURRENCY must be at least 1")
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func atoi(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return n
}

func normalizeBasePath(p string) string {
	p = "/" + strings.Trim(p, "/")
	if p == "/" {
		return ""
	}
	return p
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
