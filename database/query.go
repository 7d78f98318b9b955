package database

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dx01/dx01-api/utils"
)

// Result is the untyped outcome of Query.
type Result struct {
	Rows     []map[string]interface{}
	RowCount int64
}

// Query runs a parameterized statement and returns its rows as column maps.
// Placeholders are positional "?" and args are bound by the driver, never interpolated.
func (p *Pool) Query(ctx context.Context, text string, args ...interface{}) (*Result, error) {
	var rows []map[string]interface{}
	n, err := p.Scan(ctx, &rows, text, args...)
	if err != nil {
		return nil, err
	}
	return &Result{Rows: rows, RowCount: n}, nil
}

// Scan runs a parameterized statement and scans its rows into dest.
func (p *Pool) Scan(ctx context.Context, dest interface{}, text string, args ...interface{}) (int64, error) {
	return p.run(ctx, text, args, func(db *gorm.DB) *gorm.DB {
		return db.Raw(text, args...).Scan(dest)
	})
}

// Exec runs a parameterized statement that returns no rows and reports rows affected.
func (p *Pool) Exec(ctx context.Context, text string, args ...interface{}) (int64, error) {
	return p.run(ctx, text, args, func(db *gorm.DB) *gorm.DB {
		return db.Exec(text, args...)
	})
}

// run is the single choke point every query goes through: it reserves a connection, times and logs.
func (p *Pool) run(ctx context.Context, text string, args []interface{}, fn func(*gorm.DB) *gorm.DB) (int64, error) {
	if p == nil {
		return 0, ErrNotInitialized
	}

	start := time.Now()
	conn, err := p.acquire(ctx)
	if err == nil {
		tx := fn(p.session(ctx, conn))
		conn.Close()
		err = tx.Error
		if err == nil {
			utils.Logger.Debug("executed query",
				zap.String("text", text),
				zap.Duration("duration", time.Since(start)),
				zap.Int64("rows", tx.RowsAffected),
			)
			return tx.RowsAffected, nil
		}
	}

	utils.Logger.Error("query error",
		zap.String("text", text),
		zap.Any("params", args),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	return 0, err
}
