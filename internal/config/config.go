// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DBDriverSQLite = "sqlite"
	DBDriverMySQL  = "mysql"
)

// Supported session stores.
const (
	SessionStoreMemory = "memory"
	SessionStoreSQL    = "sql"
	SessionStoreRedis  = "redis"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"ayyavu-construction-secret",
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver   string `env:"AYYAVU_DB_DRIVER" envDefault:"sqlite"`
	DBPath     string `env:"AYYAVU_DB_PATH" envDefault:"./data/construction.db"`
	ServerHost string `env:"AYYAVU_SERVER_HOST"`
	ServerPort int    `env:"AYYAVU_SERVER_PORT" envDefault:"3000"`
	Env        string `env:"AYYAVU_ENV" envDefault:"development"`
	LogLevel   string `env:"AYYAVU_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"AYYAVU_UPLOADS_DIR" envDefault:"./uploads"`
	PublicDir  string `env:"AYYAVU_PUBLIC_DIR" envDefault:"./public"`

	// Session configuration
	SessionStore    string        `env:"AYYAVU_SESSION_STORE" envDefault:"memory"`
	SessionLifetime time.Duration `env:"AYYAVU_SESSION_LIFETIME" envDefault:"8760h"`
	SessionSecret   string        `env:"AYYAVU_SESSION_SECRET"`
	TrustedOrigins  []string      `env:"AYYAVU_TRUSTED_ORIGINS" envSeparator:","`

	// Redis is only used by the redis session store
	RedisURL    string `env:"AYYAVU_REDIS_URL"`
	RedisPrefix string `env:"AYYAVU_REDIS_PREFIX" envDefault:"ayyavu:session:"`

	DoSeed         bool `env:"AYYAVU_DO_SEED" envDefault:"true"`
	MetricsEnabled bool `env:"AYYAVU_METRICS_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DBDriverSQLite, DBDriverMySQL:
	default:
		return fmt.Errorf("AYYAVU_DB_DRIVER must be %q or %q, got %q", DBDriverSQLite, DBDriverMySQL, c.DBDriver)
	}

	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreSQL:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("AYYAVU_REDIS_URL is required when AYYAVU_SESSION_STORE=%s", SessionStoreRedis)
		}
	default:
		return fmt.Errorf("AYYAVU_SESSION_STORE must be one of memory, sql, redis; got %q", c.SessionStore)
	}

	if c.SessionLifetime <= 0 {
		return fmt.Errorf("AYYAVU_SESSION_LIFETIME must be positive, got %s", c.SessionLifetime)
	}

	if c.IsDevelopment() {
		if c.SessionSecret == "" {
			slog.Warn("AYYAVU_SESSION_SECRET is not set; acceptable in development only")
		}
		return nil
	}

	// Production requires a real secret
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("AYYAVU_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("AYYAVU_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(c.SessionSecret) {
		slog.Warn("AYYAVU_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
