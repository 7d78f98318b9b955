package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/dx01/dx01-api/models"
	"github.com/dx01/dx01-api/utils"
)

const apiVersion = "1.0.0"

// HealthController serves the health dashboard endpoints and the API root.
type HealthController struct {
	status StatusReader
	state  *AppState
}

// NewHealthController creates a new HealthController instance.
func NewHealthController(status StatusReader, state *AppState) *HealthController {
	return &HealthController{status: status, state: state}
}

// Health is the load balancer probe. It always answers 200 and embeds the live connection status.
func (h *HealthController) Health(ctx *gin.Context) {
	utils.OK(ctx, gin.H{
		"status":    "healthy",
		"timestamp": isoNow(),
		"uptime":    h.state.Uptime(),
		"database":  h.status.ConnectionStatus(dbContext(ctx)),
	})
}

// Root describes the API and, when the database is up, its current counts.
func (h *HealthController) Root(ctx *gin.Context) {
	database := "not available"
	var stats *models.Stats
	if h.state.DatabaseAvailable() {
		database = "connected"
		stats = h.status.Stats(dbContext(ctx))
	}

	utils.OK(ctx, gin.H{
		"message":  "Bem-vindo à API dx01! 🚀",
		"version":  apiVersion,
		"database": database,
		"stats":    stats,
	})
}

// APIHealth is the dashboard payload: liveness, connection status and counts.
func (h *HealthController) APIHealth(ctx *gin.Context) {
	var stats *models.Stats
	if h.state.DatabaseAvailable() {
		stats = h.status.Stats(dbContext(ctx))
	}

	utils.OK(ctx, gin.H{
		"status":    "healthy",
		"message":   "API está funcionando! 🚀",
		"timestamp": isoNow(),
		"uptime":    h.state.Uptime(),
		"database":  h.status.ConnectionStatus(dbContext(ctx)),
		"stats":     stats,
	})
}
