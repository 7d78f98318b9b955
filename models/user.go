package models

import "time"

// AppUser is a demo user. UpdatedAt is set on insert and never refreshed.
type AppUser struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Role      string    `gorm:"size:100;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AppUser) TableName() string { return "app_users" }
