package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:               "8080",
		DataBackend:        BackendPostgres,
		DatabaseURL:        "postgres://localhost/finance",
		JWTSecret:          "secret",
		SummaryConcurrency: 4,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errorString string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "memory backend needs no url", mutate: func(c *Config) { c.DataBackend = BackendMemory; c.DatabaseURL = "" }},
		{name: "non-numeric port", mutate: func(c *Config) { c.Port = "abc" }, errorString: "invalid port 'abc': must be a number"},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, errorString: "invalid port 70000: must be between 1 and 65535"},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = "" }, errorString: "DATABASE_URL is required"},
		{name: "unknown backend", mutate: func(c *Config) { c.DataBackend = "sqlite" }, errorString: `unknown DATA_BACKEND "sqlite": must be postgres or memory`},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, errorString: "JWT_SECRET is required"},
		{name: "negative ttl", mutate: func(c *Config) { c.TokenTTL = -time.Minute }, errorString: "TOKEN_TTL_MINUTES must not be negative"},
		{name: "zero concurrency", mutate: func(c *Config) { c.SummaryConcurrency = 0 }, errorString: "SUMMARY_CONCURRENCY must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errorString, err.Error())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL_MINUTES", "")
	t.Setenv("API_BASE_PATH", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("SUMMARY_CONCURRENCY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, time.Duration(0), cfg.TokenTTL)
	assert.Equal(t, "/api/v1", cfg.APIBasePath)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 4, cfg.SummaryConcurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid TIMEZONE")
}

func TestNormalizeBasePath(t *testing.T) {
	assert.Equal(t, "/api/v1", normalizeBasePath("api/v1/"))
	assert.Equal(t, "", normalizeBasePath("/"))
}
