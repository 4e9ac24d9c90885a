package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	ratecarddomain "github.com/smallbiznis/sowforge/internal/ratecard/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ratecarddomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, entry *ratecarddomain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*ratecarddomain.Entry, error) {
	var entry ratecarddomain.Entry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) FindByRoleKey(ctx context.Context, roleKey string) (*ratecarddomain.Entry, error) {
	var entry ratecarddomain.Entry
	err := r.db.WithContext(ctx).First(&entry, "role_key = ?", roleKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) List(ctx context.Context, filter ratecarddomain.ListRequest) ([]ratecarddomain.Entry, error) {
	var items []ratecarddomain.Entry
	stmt := r.db.WithContext(ctx).Model(&ratecarddomain.Entry{})

	if filter.RoleName != "" {
		stmt = stmt.Where("role_name LIKE ?", "%"+filter.RoleName+"%")
	}

	stmt = stmt.Order(sortClause(filter.SortBy, filter.OrderBy))

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, entry *ratecarddomain.Entry) error {
	return r.db.WithContext(ctx).
		Model(&ratecarddomain.Entry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"role_name":   entry.RoleName,
			"role_key":    entry.RoleKey,
			"hourly_rate": entry.HourlyRate,
			"updated_at":  entry.UpdatedAt,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Delete(&ratecarddomain.Entry{}, "id = ?", id).Error
}

func sortClause(sortBy, orderBy string) string {
	allowed := map[string]bool{
		"role_name":   true,
		"hourly_rate": true,
		"created_at":  true,
		"updated_at":  true,
	}
	if !allowed[sortBy] {
		sortBy = "role_name"
	}
	if orderBy != "desc" {
		orderBy = "asc"
	}
	return sortBy + " " + orderBy
}
