package database

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dx01/dx01-api/models"
	"github.com/dx01/dx01-api/utils"
)

const (
	statusQuery       = "SELECT NOW() AS now, version() AS version"
	countVisitsQuery  = "SELECT COUNT(*) AS count FROM visits"
	countUsersQuery   = "SELECT COUNT(*) AS count FROM app_users"
	countRecentVisits = "SELECT COUNT(*) AS count FROM visits WHERE visited_at > NOW() - INTERVAL '24 hours'"
)

type statusRow struct {
	Now     time.Time
	Version string
}

// PoolStats is a snapshot of the pool counters.
type PoolStats struct {
	Total   int
	Idle    int
	Waiting int
}

// PoolStats reads the live pool counters.
// Waiting is the number of callers currently blocked waiting for a connection.
func (p *Pool) PoolStats() PoolStats {
	if p == nil {
		return PoolStats{}
	}
	s := p.sqlDB.Stats()
	return PoolStats{Total: s.OpenConnections, Idle: s.Idle, Waiting: int(p.waiting.Load())}
}

// ConnectionStatus checks that the database answers and reports pool health.
// It never fails: errors are reported in the returned status.
func (p *Pool) ConnectionStatus(ctx context.Context) models.ConnectionStatus {
	var row statusRow
	n, err := p.Scan(ctx, &row, statusQuery)
	if err == nil && n == 0 {
		err = errNoRows
	}
	if err != nil {
		return models.ConnectionStatus{Connected: false, Error: err.Error()}
	}

	stats := p.PoolStats()
	return models.ConnectionStatus{
		Connected:       true,
		Timestamp:       &row.Now,
		Version:         shortVersion(row.Version),
		PoolSize:        &stats.Total,
		IdleConnections: &stats.Idle,
		WaitingRequests: &stats.Waiting,
	}
}

// shortVersion keeps the product name and version number, e.g. "PostgreSQL 16.2".
func shortVersion(full string) string {
	fields := strings.Fields(full)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return strings.Join(fields, " ")
}

// Stats returns the aggregate counts, or nil if any of the queries failed.
func (p *Pool) Stats(ctx context.Context) *models.Stats {
	var stats models.Stats
	// Recent visits are counted before the total so that concurrent appends
	// cannot make VisitsLast24h exceed TotalVisits.
	counts := []struct {
		query string
		dest  *int64
	}{
		{countRecentVisits, &stats.VisitsLast24h},
		{countVisitsQuery, &stats.TotalVisits},
		{countUsersQuery, &stats.TotalUsers},
	}
	for _, c := range counts {
		if _, err := p.Scan(ctx, c.dest, c.query); err != nil {
			utils.Logger.Error("error getting stats", zap.Error(err))
			return nil
		}
	}
	return &stats
}
