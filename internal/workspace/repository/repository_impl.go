package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
	workspacedomain "github.com/smallbiznis/sowforge/internal/workspace/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) workspacedomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, workspace *workspacedomain.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*workspacedomain.Workspace, error) {
	var workspace workspacedomain.Workspace
	err := r.db.WithContext(ctx).First(&workspace, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*workspacedomain.Workspace, error) {
	var workspace workspacedomain.Workspace
	err := r.db.WithContext(ctx).First(&workspace, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *repository) List(ctx context.Context) ([]workspacedomain.Workspace, error) {
	var items []workspacedomain.Workspace
	err := r.db.WithContext(ctx).
		Model(&workspacedomain.Workspace{}).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Delete(&workspacedomain.Workspace{}, "id = ?", id).Error
}

func (r *repository) CountDocuments(ctx context.Context, id snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&sowdomain.Document{}).
		Where("workspace_id = ?", id).
		Count(&count).Error
	return count, err
}
