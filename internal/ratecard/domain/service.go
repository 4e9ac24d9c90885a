package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/sowforge/internal/pricing"
)

// CatalogProvider supplies the immutable rate catalog snapshot consumed by
// the enforcement engine. Enforcement never reaches into ambient state; the
// snapshot is taken once per call and passed down as a value.
type CatalogProvider interface {
	Snapshot(ctx context.Context) ([]pricing.RateCatalogEntry, error)
}

type Service interface {
	CatalogProvider

	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	RoleName   string  `json:"role_name"`
	HourlyRate float64 `json:"hourly_rate"`
}

type ListRequest struct {
	RoleName string
	SortBy   string
	OrderBy  string
}

type UpdateRequest struct {
	ID         string   `json:"id"`
	RoleName   *string  `json:"role_name,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
}

type Response struct {
	ID         string    `json:"id"`
	RoleName   string    `json:"role_name"`
	HourlyRate float64   `json:"hourly_rate"`
	Mandatory  bool      `json:"mandatory"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
