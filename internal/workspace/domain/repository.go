package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, workspace *Workspace) error
	FindByID(ctx context.Context, id snowflake.ID) (*Workspace, error)
	FindBySlug(ctx context.Context, slug string) (*Workspace, error)
	List(ctx context.Context) ([]Workspace, error)
	Delete(ctx context.Context, id snowflake.ID) error
	CountDocuments(ctx context.Context, id snowflake.ID) (int64, error)
}
