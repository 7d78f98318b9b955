package database

import (
	"context"
	"errors"

	"github.com/dx01/dx01-api/models"
)

const (
	listUsersQuery  = "SELECT id, name, role, created_at, updated_at FROM app_users ORDER BY created_at DESC"
	insertUserQuery = "INSERT INTO app_users (name, role) VALUES (?, ?) RETURNING id, name, role, created_at, updated_at"
)

var errNoRows = errors.New("query returned no rows")

// ListUsers returns every user, newest first.
func (p *Pool) ListUsers(ctx context.Context) ([]models.AppUser, error) {
	users := []models.AppUser{}
	if _, err := p.Scan(ctx, &users, listUsersQuery); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser inserts a user and returns the stored row.
func (p *Pool) CreateUser(ctx context.Context, name, role string) (*models.AppUser, error) {
	var user models.AppUser
	n, err := p.Scan(ctx, &user, insertUserQuery, name, role)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errNoRows
	}
	return &user, nil
}
