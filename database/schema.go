package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dx01/dx01-api/utils"
)

const createVisitsTable = `
      CREATE TABLE IF NOT EXISTS visits (
        id SERIAL PRIMARY KEY,
        ip_address VARCHAR(45),
        user_agent TEXT,
        path VARCHAR(255),
        visited_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
      );`

const createUsersTable = `
      CREATE TABLE IF NOT EXISTS app_users (
        id SERIAL PRIMARY KEY,
        name VARCHAR(100) NOT NULL,
        role VARCHAR(100) NOT NULL,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
      );`

const createVisitsIndex = `CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at DESC);`

const createUsersIndex = `CREATE INDEX IF NOT EXISTS idx_users_created_at ON app_users(created_at DESC);`

var schemaStatements = []string{
	createVisitsTable,
	createUsersTable,
	createVisitsIndex,
	createUsersIndex,
}

// InitializeSchema creates the tables and indexes when missing. It is safe to call repeatedly.
// All statements run on one dedicated connection which is released whatever the outcome.
func (p *Pool) InitializeSchema(ctx context.Context) error {
	if p == nil {
		return ErrNotInitialized
	}
	utils.Logger.Info("initializing database schema")

	err := p.withConnection(ctx, func(conn *gorm.DB) error {
		for _, stmt := range schemaStatements {
			if err := conn.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.Logger.Error("error initializing database", zap.Error(err))
		return fmt.Errorf("initialize schema: %w", err)
	}

	utils.Logger.Info("database schema initialized")
	return nil
}
