// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
	"time"
)

const testSecret = "Test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBDriver != DBDriverSQLite {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DBDriverSQLite)
	}
	if cfg.DBPath != "./data/construction.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/construction.db")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.UploadsDir != "./uploads" {
		t.Errorf("UploadsDir = %q, want %q", cfg.UploadsDir, "./uploads")
	}
	if cfg.SessionStore != SessionStoreMemory {
		t.Errorf("SessionStore = %q, want %q", cfg.SessionStore, SessionStoreMemory)
	}
	if cfg.SessionLifetime != 8760*time.Hour {
		t.Errorf("SessionLifetime = %v, want 8760h", cfg.SessionLifetime)
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled = false, want true")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "AYYAVU_SESSION_SECRET", testSecret)
	setEnv(t, "AYYAVU_DB_PATH", "/custom/path.db")
	setEnv(t, "AYYAVU_SERVER_HOST", "0.0.0.0")
	setEnv(t, "AYYAVU_SERVER_PORT", "8081")
	setEnv(t, "AYYAVU_ENV", "production")
	setEnv(t, "AYYAVU_LOG_LEVEL", "debug")
	setEnv(t, "AYYAVU_SESSION_STORE", "sql")
	setEnv(t, "AYYAVU_SESSION_LIFETIME", "2h")
	setEnv(t, "AYYAVU_TRUSTED_ORIGINS", "example.com,www.example.com")
	setEnv(t, "AYYAVU_DO_SEED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != testSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, testSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerAddr() != "0.0.0.0:8081" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:8081")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.SessionStore != SessionStoreSQL {
		t.Errorf("SessionStore = %q, want %q", cfg.SessionStore, SessionStoreSQL)
	}
	if cfg.SessionLifetime != 2*time.Hour {
		t.Errorf("SessionLifetime = %v, want 2h", cfg.SessionLifetime)
	}
	if len(cfg.TrustedOrigins) != 2 || cfg.TrustedOrigins[1] != "www.example.com" {
		t.Errorf("TrustedOrigins = %v", cfg.TrustedOrigins)
	}
	if cfg.DoSeed {
		t.Error("DoSeed = true, want false")
	}
}

func TestLoad_InvalidDriver(t *testing.T) {
	os.Clearenv()
	setEnv(t, "AYYAVU_DB_DRIVER", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for an unsupported driver")
	}
}

func TestLoad_InvalidSessionStore(t *testing.T) {
	os.Clearenv()
	setEnv(t, "AYYAVU_SESSION_STORE", "file")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for an unsupported session store")
	}
}

func TestLoad_RedisStoreRequiresURL(t *testing.T) {
	os.Clearenv()
	setEnv(t, "AYYAVU_SESSION_STORE", "redis")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without AYYAVU_REDIS_URL")
	}

	setEnv(t, "AYYAVU_REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SessionStore != SessionStoreRedis {
		t.Errorf("SessionStore = %q, want %q", cfg.SessionStore, SessionStoreRedis)
	}
}

func TestLoad_ProductionSessionSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{"empty", "", true},
		{"short", "short", true},
		{"31_bytes", "1234567890123456789012345678901", true},
		{"known_default", "change-me-to-32-byte-secret-key!", true},
		{"32_bytes", "12345678901234567890123456789012", false},
		{"strong", testSecret, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "AYYAVU_ENV", "production")
			setEnv(t, "AYYAVU_SESSION_SECRET", tt.secret)

			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 3000, ":3000"},
		{"localhost", 8080, "localhost:8080"},
		{"127.0.0.1", 443, "127.0.0.1:443"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := Config{ServerHost: tt.host, ServerPort: tt.port}
			if got := cfg.ServerAddr(); got != tt.want {
				t.Errorf("ServerAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	if hasMinimumEntropy("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Error("single character class should not pass")
	}
	if !hasMinimumEntropy("abcDEF123") {
		t.Error("three character classes should pass")
	}
}
