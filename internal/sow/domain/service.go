package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/sowforge/internal/pricing"
)

// RoleSuggester asks the AI pipeline for a first-cut role allocation. The
// returned rows are raw model output: unordered, possibly duplicated, with
// rates that must never be trusted. Callers run them through enforcement.
type RoleSuggester interface {
	SuggestRoles(ctx context.Context, brief string) ([]pricing.Row, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error

	// Generate runs the AI pipeline for the document and persists the
	// enforced result.
	Generate(ctx context.Context, req GenerateRequest) (*Response, error)

	// ExportView validates the stored table and returns everything an
	// exporter needs, or a *NotExportableError.
	ExportView(ctx context.Context, id string) (*ExportView, error)
}

type CreateRequest struct {
	WorkspaceID     string        `json:"workspace_id"`
	Title           string        `json:"title"`
	ClientName      string        `json:"client_name"`
	Rows            []pricing.Row `json:"rows"`
	DiscountPercent float64       `json:"discount_percent"`
}

type ListRequest struct {
	WorkspaceID string
}

type UpdateRequest struct {
	ID              string         `json:"id"`
	Title           *string        `json:"title,omitempty"`
	ClientName      *string        `json:"client_name,omitempty"`
	Rows            *[]pricing.Row `json:"rows,omitempty"`
	DiscountPercent *float64       `json:"discount_percent,omitempty"`
}

type GenerateRequest struct {
	ID    string `json:"id"`
	Brief string `json:"brief"`
}

type Response struct {
	ID              string                   `json:"id"`
	WorkspaceID     string                   `json:"workspace_id"`
	Title           string                   `json:"title"`
	ClientName      string                   `json:"client_name"`
	Rows            []pricing.Row            `json:"rows"`
	DiscountPercent float64                  `json:"discount_percent"`
	Breakdown       pricing.Breakdown        `json:"breakdown"`
	Validation      pricing.ValidationResult `json:"validation"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// ExportView is the validated data handed to the PDF/CSV exporters.
type ExportView struct {
	Title           string
	ClientName      string
	Rows            []pricing.Row
	DiscountPercent float64
	Breakdown       pricing.Breakdown
}
