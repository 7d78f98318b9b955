package config

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// PoolSettings are the connection pool limits derived from AppConfig.
type PoolSettings struct {
	MaxConns       int
	IdleTimeout    time.Duration
	ConnectTimeout time.Duration
}

// Pool returns the pool limits for the configured database.
func (c AppConfig) Pool() PoolSettings {
	return PoolSettings{
		MaxConns:       c.DBMaxConns,
		IdleTimeout:    time.Duration(c.DBIdleTimeoutSec) * time.Second,
		ConnectTimeout: time.Duration(c.DBConnectTimeoutSec) * time.Second,
	}
}

// UseTLS reports whether the database host is a managed cloud instance that requires TLS.
func (c AppConfig) UseTLS() bool {
	if c.DBTLSHostSuffix == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(c.DBHost), strings.ToLower(c.DBTLSHostSuffix))
}

// DSN builds a libpq style connection string for the configured database.
// TLS is requested without certificate verification for managed hosts and disabled otherwise.
func (c AppConfig) DSN() string {
	sslMode := "disable"
	if c.UseTLS() {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		dsnValue(c.DBHost),
		dsnValue(c.DBPort),
		dsnValue(c.DBUser),
		dsnValue(c.DBPassword),
		dsnValue(c.DBName),
		sslMode,
		c.DBConnectTimeoutSec,
	)
}

// dsnValue quotes values that contain spaces, quotes or backslashes.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// GormLogLevel maps application LogLevel to GORM's logger level.
func (c AppConfig) GormLogLevel() logger.LogLevel {
	switch c.LogLevel {
	case "debug":
		// GORM 'Info' shows SQL; use with caution
		return logger.Info
	case "info", "", "warn":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
