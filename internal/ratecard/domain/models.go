package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sowforge/internal/pricing"
)

// Entry is one row of the official rate card. RoleKey is the normalized
// comparison key; uniqueness is enforced on it so two spellings of the same
// role can never coexist.
type Entry struct {
	ID snowflake.ID `gorm:"primaryKey"`

	RoleName   string  `gorm:"column:role_name;type:text;not null"`
	RoleKey    string  `gorm:"column:role_key;type:text;not null;uniqueIndex"`
	HourlyRate float64 `gorm:"column:hourly_rate;not null"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Entry) TableName() string { return "rate_card_entries" }

func (e *Entry) Validate() error {
	if strings.TrimSpace(e.RoleName) == "" || pricing.Normalize(e.RoleName) == "" {
		return ErrInvalidRoleName
	}
	if e.HourlyRate < 0 {
		return ErrInvalidHourlyRate
	}
	return nil
}
