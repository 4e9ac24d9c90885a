package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	FindByID(ctx context.Context, id snowflake.ID) (*Entry, error)
	FindByRoleKey(ctx context.Context, roleKey string) (*Entry, error)
	List(ctx context.Context, filter ListRequest) ([]Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id snowflake.ID) error
}
