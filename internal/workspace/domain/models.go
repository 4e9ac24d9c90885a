package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Workspace groups SOW documents for one client or engagement.
type Workspace struct {
	ID snowflake.ID `gorm:"primaryKey"`

	Name string `gorm:"type:text;not null"`
	Slug string `gorm:"type:text;not null;uniqueIndex"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Workspace) TableName() string { return "workspaces" }

func (w *Workspace) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
