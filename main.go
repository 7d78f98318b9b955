package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dx01/dx01-api/config"
	"github.com/dx01/dx01-api/controllers"
	"github.com/dx01/dx01-api/database"
	"github.com/dx01/dx01-api/routes"
	"github.com/dx01/dx01-api/utils"
)

const schemaInitTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer utils.SyncLogger()

	state := controllers.NewAppState()

	pool, err := database.Open(cfg)
	if err != nil {
		utils.Logger.Error("database unavailable, starting in fallback mode", zap.Error(err))
	} else {
		// Routes are served while the schema is being checked; the flag flips once it succeeds.
		go initializeDatabase(pool, state)
	}

	r := routes.SetupRouter(cfg, pool, state)

	srv := utils.GraceServer(":"+cfg.AppPort, r)
	srv.AfterShutdown(func() { _ = pool.Close() })

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	utils.Sugar.Infof("Health check: http://localhost:%s/health", cfg.AppPort)
	if err := srv.ListenAndServe(); err != nil {
		utils.Sugar.Errorf("server stopped with error: %v", err)
		_ = pool.Close()
		utils.SyncLogger()
		os.Exit(1)
	}
	utils.Logger.Info("server exited")
}

func initializeDatabase(pool *database.Pool, state *controllers.AppState) {
	ctx, cancel := context.WithTimeout(context.Background(), schemaInitTimeout)
	defer cancel()

	if err := pool.InitializeSchema(ctx); err != nil {
		utils.Logger.Warn("database schema initialization failed, running in fallback mode", zap.Error(err))
		state.SetDatabaseAvailable(false)
		return
	}
	state.SetDatabaseAvailable(true)
	utils.Logger.Info("database available")
}
