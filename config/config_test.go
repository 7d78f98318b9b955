package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "CORS_ORIGIN", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "GIN_MODE", "RATE_LIMIT_PER_MINUTE", "LOG_LEVEL", "LOG_PATH"} {
		t.Setenv(key, "")
	}
}

func TestBuildDefaults(t *testing.T) {
	clearEnv(t)
	c := build(filepath.Join(t.TempDir(), "missing.json"))

	if c.AppPort != "5000" {
		t.Fatalf("AppPort = %q, want 5000", c.AppPort)
	}
	if c.CORSOrigin != "http://localhost:5173" {
		t.Fatalf("CORSOrigin = %q", c.CORSOrigin)
	}
	if c.RateLimitPerMinute != 0 {
		t.Fatalf("RateLimitPerMinute = %d, want 0 (disabled)", c.RateLimitPerMinute)
	}
	if c.DBHost != "localhost" || c.DBPort != "5432" || c.DBName != "dx01_dev" || c.DBUser != "postgres" || c.DBPassword != "postgres" {
		t.Fatalf("unexpected database defaults: %+v", c)
	}

	pool := c.Pool()
	if pool.MaxConns != 20 || pool.IdleTimeout != 30*time.Second || pool.ConnectTimeout != 5*time.Second {
		t.Fatalf("Pool() = %+v", pool)
	}
}

func TestBuildEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"AppPort":"7000","DBHost":"file-host","DBMaxConns":5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("DB_NAME", "other")

	c := build(path)
	if c.AppPort != "7000" {
		t.Fatalf("AppPort = %q, want value from file", c.AppPort)
	}
	if c.DBHost != "env-host" {
		t.Fatalf("DBHost = %q, want env override", c.DBHost)
	}
	if c.DBName != "other" {
		t.Fatalf("DBName = %q", c.DBName)
	}
	if c.DBMaxConns != 5 {
		t.Fatalf("DBMaxConns = %d, want 5", c.DBMaxConns)
	}
}

func TestUseTLS(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", false},
		{"db.internal", false},
		{"dx01.abc123.us-east-1.rds.amazonaws.com", true},
		{"DX01.ABC123.US-EAST-1.RDS.AMAZONAWS.COM", true},
		{"rds.amazonaws.com.evil.example", false},
	}
	for _, tt := range tests {
		c := AppConfig{DBHost: tt.host, DBTLSHostSuffix: "rds.amazonaws.com"}
		if got := c.UseTLS(); got != tt.want {
			t.Errorf("UseTLS(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestDSN(t *testing.T) {
	c := AppConfig{
		DBHost:              "localhost",
		DBPort:              "5432",
		DBUser:              "postgres",
		DBPassword:          "it's secret",
		DBName:              "dx01_dev",
		DBConnectTimeoutSec: 5,
		DBTLSHostSuffix:     "rds.amazonaws.com",
	}
	dsn := c.DSN()
	want := `host=localhost port=5432 user=postgres password='it\'s secret' dbname=dx01_dev sslmode=disable connect_timeout=5`
	if dsn != want {
		t.Fatalf("DSN() = %q, want %q", dsn, want)
	}

	c.DBHost = "x.rds.amazonaws.com"
	if !strings.Contains(c.DSN(), "sslmode=require") {
		t.Fatalf("DSN() for managed host = %q, want sslmode=require", c.DSN())
	}
}

func TestGormLogLevel(t *testing.T) {
	if got := (AppConfig{LogLevel: "debug"}).GormLogLevel(); got != logger.Info {
		t.Fatalf("debug -> %v", got)
	}
	if got := (AppConfig{LogLevel: "silent"}).GormLogLevel(); got != logger.Silent {
		t.Fatalf("silent -> %v", got)
	}
	if got := (AppConfig{}).GormLogLevel(); got != logger.Warn {
		t.Fatalf("default -> %v", got)
	}
}
