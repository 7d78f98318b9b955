package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dx01/dx01-api/models"
)

// StatusReader answers health and aggregate questions. Implementations never fail.
type StatusReader interface {
	ConnectionStatus(ctx context.Context) models.ConnectionStatus
	Stats(ctx context.Context) *models.Stats
}

// UserStore reads and writes app users.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.AppUser, error)
	CreateUser(ctx context.Context, name, role string) (*models.AppUser, error)
}

// dbContext detaches database work from the client connection so a dropped client does not abort it.
func dbContext(ctx *gin.Context) context.Context {
	return context.WithoutCancel(ctx.Request.Context())
}

func isoNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
