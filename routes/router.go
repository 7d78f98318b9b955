package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dx01/dx01-api/config"
	"github.com/dx01/dx01-api/controllers"
	"github.com/dx01/dx01-api/middleware"
	"github.com/dx01/dx01-api/utils"
)

// Store is everything the routes need from the data layer.
type Store interface {
	controllers.StatusReader
	controllers.UserStore
	middleware.VisitStore
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, store Store, state *controllers.AppState) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.Ginzap(utils.Logger, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(utils.Logger, true))
	r.Use(middleware.SecureHeaders())
	r.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	healthController := controllers.NewHealthController(store, state)
	userController := controllers.NewUserController(store, state)
	recordVisit := middleware.VisitRecorder(store, state.DatabaseAvailable)

	// load balancer probe
	r.GET("/health", healthController.Health)

	api := r.Group("/api")
	api.GET("", recordVisit, healthController.Root)
	api.GET("/health", healthController.APIHealth)
	api.GET("/users", recordVisit, userController.ListUsers)
	createUser := []gin.HandlerFunc{userController.CreateUser}
	if cfg.RateLimitPerMinute > 0 {
		createUser = append([]gin.HandlerFunc{middleware.RateLimit(cfg.RateLimitPerMinute)}, createUser...)
	}
	api.POST("/users", createUser...)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, utils.MsgNotFound)
	})

	return r
}

func corsConfig(origin string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if origin == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = []string{origin}
	}
	return c
}
