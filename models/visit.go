package models

import "time"

// Visit is one access-log row. Rows are only ever appended.
type Visit struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	IPAddress *string   `gorm:"size:45" json:"ip_address"`
	UserAgent *string   `gorm:"type:text" json:"user_agent"`
	Path      *string   `gorm:"size:255" json:"path"`
	VisitedAt time.Time `json:"visited_at"`
}

func (Visit) TableName() string { return "visits" }
