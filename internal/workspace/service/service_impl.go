package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sowforge/internal/workspace/domain"
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
		log:   p.Log.Named("workspace.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	now := time.Now().UTC()
	workspace := domain.Workspace{
		ID:        s.genID.Generate(),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	workspace.Slug = slugify(workspace.Name)

	if err := workspace.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySlug(ctx, workspace.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSlug
	}

	if err := s.repo.Insert(ctx, &workspace); err != nil {
		return nil, err
	}

	s.log.Info("workspace created",
		zap.String("workspace_id", workspace.ID.String()),
		zap.String("slug", workspace.Slug),
	)

	resp := toResponse(workspace)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (*domain.Response, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	workspace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(*workspace)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	workspace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if workspace == nil {
		return domain.ErrNotFound
	}

	count, err := s.repo.CountDocuments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrWorkspaceInUse
	}

	return s.repo.Delete(ctx, id)
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

func slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		} else {
			pendingDash = true
		}
	}
	return b.String()
}

func toResponse(workspace domain.Workspace) domain.Response {
	return domain.Response{
		ID:        workspace.ID.String(),
		Name:      workspace.Name,
		Slug:      workspace.Slug,
		CreatedAt: workspace.CreatedAt,
		UpdatedAt: workspace.UpdatedAt,
	}
}
