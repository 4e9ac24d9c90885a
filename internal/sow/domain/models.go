package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sowforge/internal/pricing"
	"gorm.io/datatypes"
)

// Document is a Statement of Work. Rows holds the pricing table as JSON; it
// is only ever written after passing through the enforcement engine, so a
// persisted document is compliant by construction.
type Document struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	WorkspaceID snowflake.ID `gorm:"column:workspace_id;not null;index"`

	Title      string `gorm:"type:text;not null"`
	ClientName string `gorm:"column:client_name;type:text"`

	Rows            datatypes.JSON `gorm:"type:jsonb"`
	DiscountPercent float64        `gorm:"column:discount_percent;not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Document) TableName() string { return "sow_documents" }

func (d *Document) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrInvalidTitle
	}
	if d.WorkspaceID == 0 {
		return ErrInvalidWorkspace
	}
	return nil
}

// PricingRows decodes the stored pricing table.
func (d *Document) PricingRows() ([]pricing.Row, error) {
	if len(d.Rows) == 0 {
		return nil, nil
	}
	var rows []pricing.Row
	if err := json.Unmarshal(d.Rows, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetPricingRows encodes the pricing table for storage.
func (d *Document) SetPricingRows(rows []pricing.Row) error {
	encoded, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	d.Rows = datatypes.JSON(encoded)
	return nil
}
