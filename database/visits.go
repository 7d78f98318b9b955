package database

import (
	"context"

	"go.uber.org/zap"

	"github.com/dx01/dx01-api/models"
	"github.com/dx01/dx01-api/utils"
)

const insertVisitQuery = "INSERT INTO visits (ip_address, user_agent, path) VALUES (?, ?, ?)"

const (
	maxIPLength   = 45
	maxPathLength = 255
)

// BestEffort is the result of an operation whose failure must never reach the caller.
// Err is already logged when set; callers may inspect it but are not required to.
type BestEffort struct {
	Err error
}

// RecordVisit appends one access-log row. Failures are logged and returned in BestEffort only.
func (p *Pool) RecordVisit(ctx context.Context, v models.Visit) BestEffort {
	_, err := p.Exec(ctx, insertVisitQuery,
		clean(v.IPAddress, maxIPLength),
		clean(v.UserAgent, 0),
		clean(v.Path, maxPathLength),
	)
	if err != nil {
		utils.Logger.Error("error recording visit", zap.Error(err))
	}
	return BestEffort{Err: err}
}

// clean strips markup and truncates to limit runes; nil and empty stay NULL.
func clean(s *string, limit int) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	out := utils.StripTags(*s)
	if limit > 0 {
		if r := []rune(out); len(r) > limit {
			out = string(r[:limit])
		}
	}
	return out
}
