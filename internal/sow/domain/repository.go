package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, id snowflake.ID) (*Document, error)
	List(ctx context.Context, workspaceID snowflake.ID) ([]Document, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id snowflake.ID) error
}
