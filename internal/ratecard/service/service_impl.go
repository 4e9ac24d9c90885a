package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sowforge/internal/pricing"
	"github.com/smallbiznis/sowforge/internal/ratecard/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("ratecard.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	now := time.Now().UTC()
	entry := domain.Entry{
		ID:         s.genID.Generate(),
		RoleName:   strings.TrimSpace(req.RoleName),
		HourlyRate: req.HourlyRate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	entry.RoleKey = pricing.Normalize(entry.RoleName)

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByRoleKey(ctx, entry.RoleKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateRole
	}

	if err := s.repo.Insert(ctx, &entry); err != nil {
		return nil, err
	}

	s.log.Info("rate card entry created",
		zap.String("entry_id", entry.ID.String()),
		zap.String("role_name", entry.RoleName),
	)

	resp := toResponse(entry)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	items, err := s.repo.List(ctx, domain.ListRequest{
		RoleName: strings.TrimSpace(req.RoleName),
		SortBy:   strings.TrimSpace(req.SortBy),
		OrderBy:  strings.TrimSpace(req.OrderBy),
	})
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}

	if req.RoleName != nil {
		entry.RoleName = strings.TrimSpace(*req.RoleName)
		entry.RoleKey = pricing.Normalize(entry.RoleName)
	}
	if req.HourlyRate != nil {
		entry.HourlyRate = *req.HourlyRate
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if other, err := s.repo.FindByRoleKey(ctx, entry.RoleKey); err != nil {
		return nil, err
	} else if other != nil && other.ID != entry.ID {
		return nil, domain.ErrDuplicateRole
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	resp := toResponse(*entry)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("rate card entry deleted",
		zap.String("entry_id", entry.ID.String()),
		zap.String("role_name", entry.RoleName),
	)
	return nil
}

// Snapshot returns the catalog as an immutable value for one enforcement
// call. Catalog writes racing an in-flight call are the caller's concern.
func (s *Service) Snapshot(ctx context.Context) ([]pricing.RateCatalogEntry, error) {
	items, err := s.repo.List(ctx, domain.ListRequest{})
	if err != nil {
		return nil, err
	}

	catalog := make([]pricing.RateCatalogEntry, 0, len(items))
	for _, item := range items {
		catalog = append(catalog, pricing.RateCatalogEntry{
			RoleName:   item.RoleName,
			HourlyRate: item.HourlyRate,
		})
	}
	return catalog, nil
}

func (s *Service) parseID(raw string) (snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrInvalidID
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toResponse(entry domain.Entry) domain.Response {
	return domain.Response{
		ID:         entry.ID.String(),
		RoleName:   entry.RoleName,
		HourlyRate: entry.HourlyRate,
		Mandatory:  pricing.IsRoleMandatory(entry.RoleName),
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}
}
