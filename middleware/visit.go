package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dx01/dx01-api/database"
	"github.com/dx01/dx01-api/models"
)

// VisitStore appends access-log rows.
type VisitStore interface {
	RecordVisit(ctx context.Context, v models.Visit) database.BestEffort
}

// VisitRecorder appends one visit row after the handler has written its response.
// Recording is skipped while the database is unavailable and its outcome never reaches the client.
func VisitRecorder(store VisitStore, available func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !available() {
			return
		}

		ip := c.ClientIP()
		userAgent := c.Request.UserAgent()
		path := c.Request.URL.Path
		_ = store.RecordVisit(context.WithoutCancel(c.Request.Context()), models.Visit{
			IPAddress: &ip,
			UserAgent: &userAgent,
			Path:      &path,
		})
	}
}
