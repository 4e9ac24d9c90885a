package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sowforge/internal/config"
	"github.com/smallbiznis/sowforge/internal/pricing"
	ratecarddomain "github.com/smallbiznis/sowforge/internal/ratecard/domain"
	"github.com/smallbiznis/sowforge/internal/sow/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	GenID     *snowflake.Node
	Cfg       config.Config
	Repo      domain.Repository
	Catalog   ratecarddomain.Service
	Suggester domain.RoleSuggester
}

type serviceImpl struct {
	log       *zap.Logger
	genID     *snowflake.Node
	cfg       config.Config
	repo      domain.Repository
	catalog   ratecarddomain.Service
	suggester domain.RoleSuggester
}

func New(p Params) domain.Service {
	return &serviceImpl{
		log:       p.Log.Named("sow.service"),
		genID:     p.GenID,
		cfg:       p.Cfg,
		repo:      p.Repo,
		catalog:   p.Catalog,
		suggester: p.Suggester,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	workspaceID, err := parseID(req.WorkspaceID)
	if err != nil {
		return nil, domain.ErrInvalidWorkspace
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return nil, domain.ErrInvalidDiscount
	}

	doc := domain.Document{
		ID:              s.genID.Generate(),
		WorkspaceID:     workspaceID,
		Title:           strings.TrimSpace(req.Title),
		ClientName:      strings.TrimSpace(req.ClientName),
		DiscountPercent: req.DiscountPercent,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.enforce(ctx, req.Rows)
	if err != nil {
		return nil, err
	}
	if err := doc.SetPricingRows(rows); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, &doc); err != nil {
		return nil, err
	}

	s.log.Info("sow document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("workspace_id", doc.WorkspaceID.String()),
		zap.Int("rows", len(rows)),
	)

	return s.toResponse(&doc)
}

func (s *serviceImpl) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	var workspaceID snowflake.ID
	if strings.TrimSpace(req.WorkspaceID) != "" {
		id, err := parseID(req.WorkspaceID)
		if err != nil {
			return nil, domain.ErrInvalidWorkspace
		}
		workspaceID = id
	}

	docs, err := s.repo.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(docs))
	for i := range docs {
		item, err := s.toResponse(&docs[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *item)
	}
	return resp, nil
}

func (s *serviceImpl) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(doc)
}

func (s *serviceImpl) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	doc, err := s.findDocument(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		doc.Title = strings.TrimSpace(*req.Title)
	}
	if req.ClientName != nil {
		doc.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.DiscountPercent != nil {
		if *req.DiscountPercent < 0 || *req.DiscountPercent > 100 {
			return nil, domain.ErrInvalidDiscount
		}
		doc.DiscountPercent = *req.DiscountPercent
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if req.Rows != nil {
		rows, err := s.enforce(ctx, *req.Rows)
		if err != nil {
			return nil, err
		}
		if err := doc.SetPricingRows(rows); err != nil {
			return nil, err
		}
	}

	doc.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return s.toResponse(doc)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, doc.ID)
}

func (s *serviceImpl) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.Response, error) {
	doc, err := s.findDocument(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	suggested, err := s.suggester.SuggestRoles(ctx, req.Brief)
	if err != nil {
		return nil, err
	}

	rows, err := s.enforce(ctx, suggested)
	if err != nil {
		return nil, err
	}
	if err := doc.SetPricingRows(rows); err != nil {
		return nil, err
	}

	doc.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info("sow pricing generated",
		zap.String("document_id", doc.ID.String()),
		zap.Int("suggested_rows", len(suggested)),
		zap.Int("final_rows", len(rows)),
	)

	return s.toResponse(doc)
}

func (s *serviceImpl) ExportView(ctx context.Context, id string) (*domain.ExportView, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := doc.PricingRows()
	if err != nil {
		return nil, err
	}

	result := pricing.Validate(rows)
	if !result.IsValid {
		return nil, &domain.NotExportableError{
			Result:      result,
			Suggestions: pricing.SuggestAdjustments(rows),
		}
	}

	return &domain.ExportView{
		Title:           doc.Title,
		ClientName:      doc.ClientName,
		Rows:            rows,
		DiscountPercent: doc.DiscountPercent,
		Breakdown:       pricing.CalculateBreakdown(rows, doc.DiscountPercent),
	}, nil
}

// enforce snapshots the rate catalog and runs the pricing table through the
// enforcement engine.
func (s *serviceImpl) enforce(ctx context.Context, rows []pricing.Row) ([]pricing.Row, error) {
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	opts := pricing.DefaultOptions()
	if s.cfg.Pricing.FallbackRate > 0 {
		opts.FallbackRate = s.cfg.Pricing.FallbackRate
	}
	opts.NewRowID = func() string { return s.genID.Generate().String() }

	return pricing.EnforceWithOptions(rows, catalog, opts)
}

func (s *serviceImpl) findDocument(ctx context.Context, id string) (*domain.Document, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	doc, err := s.repo.FindByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (s *serviceImpl) toResponse(doc *domain.Document) (*domain.Response, error) {
	rows, err := doc.PricingRows()
	if err != nil {
		return nil, err
	}
	return &domain.Response{
		ID:              doc.ID.String(),
		WorkspaceID:     doc.WorkspaceID.String(),
		Title:           doc.Title,
		ClientName:      doc.ClientName,
		Rows:            rows,
		DiscountPercent: doc.DiscountPercent,
		Breakdown:       pricing.CalculateBreakdown(rows, doc.DiscountPercent),
		Validation:      pricing.Validate(rows),
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}, nil
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
