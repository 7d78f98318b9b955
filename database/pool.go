// Package database owns the PostgreSQL connection pool and every query the API runs.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dx01/dx01-api/config"
	"github.com/dx01/dx01-api/utils"
)

// ErrNotInitialized is returned by every operation on a nil *Pool.
var ErrNotInitialized = errors.New("database not initialized")

// ErrAcquireTimeout is returned when no pooled connection became free in time.
var ErrAcquireTimeout = errors.New("timed out waiting for a database connection")

const defaultAcquireTimeout = 5 * time.Second

// Pool is the single process-wide connection pool.
type Pool struct {
	db    *gorm.DB
	sqlDB *sql.DB

	// callers blocked in acquire
	waiting        atomic.Int64
	acquireTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

// Open builds the pool from configuration. No connection is made until the first query.
func Open(cfg config.AppConfig) (*Pool, error) {
	gormCfg := &gorm.Config{
		Logger:               NewGormLogger(cfg.GormLogLevel()),
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	p, err := New(db)
	if err != nil {
		return nil, err
	}

	settings := cfg.Pool()
	p.sqlDB.SetMaxOpenConns(settings.MaxConns)
	p.sqlDB.SetMaxIdleConns(settings.MaxConns)
	p.sqlDB.SetConnMaxIdleTime(settings.IdleTimeout)
	if settings.ConnectTimeout > 0 {
		p.acquireTimeout = settings.ConnectTimeout
	}

	utils.Logger.Info("database pool created",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
		zap.Bool("tls", cfg.UseTLS()),
		zap.Int("max_conns", settings.MaxConns),
		zap.Duration("acquire_timeout", p.acquireTimeout),
	)
	return p, nil
}

// New wraps an already opened gorm DB.
func New(db *gorm.DB) (*Pool, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	return &Pool{db: db, sqlDB: sqlDB, acquireTimeout: defaultAcquireTimeout}, nil
}

// acquire reserves one connection, giving up after acquireTimeout.
// ctx only bounds the wait; the returned connection outlives it and must be closed by the caller.
func (p *Pool) acquire(ctx context.Context) (*sql.Conn, error) {
	p.waiting.Add(1)
	defer p.waiting.Add(-1)

	waitCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.sqlDB.Conn(waitCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %s", ErrAcquireTimeout, p.acquireTimeout)
		}
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return conn, nil
}

// withConnection runs fn with every statement on one reserved connection, released whatever the outcome.
func (p *Pool) withConnection(ctx context.Context, fn func(*gorm.DB) error) error {
	conn, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(p.session(ctx, conn))
}

// session returns a gorm handle whose statements all run on conn.
func (p *Pool) session(ctx context.Context, conn *sql.Conn) *gorm.DB {
	tx := p.db.WithContext(ctx)
	tx.Statement.ConnPool = conn
	return tx
}

// Close drains and closes all connections. Later calls return the first result.
func (p *Pool) Close() error {
	if p == nil {
		return nil
	}
	p.closeOnce.Do(func() {
		p.closeErr = p.sqlDB.Close()
		if p.closeErr != nil {
			utils.Logger.Error("database pool close failed", zap.Error(p.closeErr))
			return
		}
		utils.Logger.Info("database pool closed")
	})
	return p.closeErr
}
