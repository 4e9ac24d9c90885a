package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/sowforge/internal/config"
	"github.com/smallbiznis/sowforge/internal/export"
	"github.com/smallbiznis/sowforge/internal/pricing"
	ratecarddomain "github.com/smallbiznis/sowforge/internal/ratecard/domain"
	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
	workspacedomain "github.com/smallbiznis/sowforge/internal/workspace/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateCardService struct {
	snapshot []pricing.RateCatalogEntry
	createFn func(req ratecarddomain.CreateRequest) (*ratecarddomain.Response, error)
}

func (f *fakeRateCardService) Snapshot(_ context.Context) ([]pricing.RateCatalogEntry, error) {
	return f.snapshot, nil
}

func (f *fakeRateCardService) Create(_ context.Context, req ratecarddomain.CreateRequest) (*ratecarddomain.Response, error) {
	if f.createFn != nil {
		return f.createFn(req)
	}
	return &ratecarddomain.Response{RoleName: req.RoleName, HourlyRate: req.HourlyRate}, nil
}

func (f *fakeRateCardService) List(_ context.Context, _ ratecarddomain.ListRequest) ([]ratecarddomain.Response, error) {
	out := make([]ratecarddomain.Response, 0, len(f.snapshot))
	for _, entry := range f.snapshot {
		out = append(out, ratecarddomain.Response{RoleName: entry.RoleName, HourlyRate: entry.HourlyRate})
	}
	return out, nil
}

func (f *fakeRateCardService) Update(_ context.Context, _ ratecarddomain.UpdateRequest) (*ratecarddomain.Response, error) {
	return nil, ratecarddomain.ErrNotFound
}

func (f *fakeRateCardService) Delete(_ context.Context, _ string) error {
	return ratecarddomain.ErrNotFound
}

type fakeSOWService struct {
	exportErr error
	view      *sowdomain.ExportView
}

func (f *fakeSOWService) Create(_ context.Context, _ sowdomain.CreateRequest) (*sowdomain.Response, error) {
	return nil, sowdomain.ErrInvalidWorkspace
}

func (f *fakeSOWService) List(_ context.Context, _ sowdomain.ListRequest) ([]sowdomain.Response, error) {
	return nil, nil
}

func (f *fakeSOWService) GetByID(_ context.Context, _ string) (*sowdomain.Response, error) {
	return nil, sowdomain.ErrNotFound
}

func (f *fakeSOWService) Update(_ context.Context, _ sowdomain.UpdateRequest) (*sowdomain.Response, error) {
	return nil, sowdomain.ErrNotFound
}

func (f *fakeSOWService) Delete(_ context.Context, _ string) error {
	return sowdomain.ErrNotFound
}

func (f *fakeSOWService) Generate(_ context.Context, _ sowdomain.GenerateRequest) (*sowdomain.Response, error) {
	return nil, sowdomain.ErrGenerationOff
}

func (f *fakeSOWService) ExportView(_ context.Context, _ string) (*sowdomain.ExportView, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.view, nil
}

type fakeWorkspaceService struct {
	deleteErr error
}

func (f *fakeWorkspaceService) Create(_ context.Context, req workspacedomain.CreateRequest) (*workspacedomain.Response, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, workspacedomain.ErrInvalidName
	}
	return &workspacedomain.Response{Name: req.Name}, nil
}

func (f *fakeWorkspaceService) List(_ context.Context) ([]workspacedomain.Response, error) {
	return nil, nil
}

func (f *fakeWorkspaceService) GetByID(_ context.Context, _ string) (*workspacedomain.Response, error) {
	return nil, workspacedomain.ErrNotFound
}

func (f *fakeWorkspaceService) Delete(_ context.Context, _ string) error {
	return f.deleteErr
}

func newTestServer(t *testing.T, sowSvc sowdomain.Service, rcSvc ratecarddomain.Service, wsSvc workspacedomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewServer(ServerParams{
		Gin:          engine,
		Cfg:          config.Config{Pricing: config.PricingConfig{FallbackRate: 120}},
		GenID:        node,
		RatecardSvc:  rcSvc,
		WorkspaceSvc: wsSvc,
		SowSvc:       sowSvc,
		Exporter:     export.New(),
	})
}

func performJSON(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func fullCatalog() []pricing.RateCatalogEntry {
	return []pricing.RateCatalogEntry{
		{RoleName: "Tech - Head Of - Senior Project Management", HourlyRate: 365},
		{RoleName: "Tech - Delivery - Project Coordination", HourlyRate: 110},
		{RoleName: "Account Management - Senior Account Manager", HourlyRate: 210},
		{RoleName: "Creative - Senior Designer", HourlyRate: 120},
	}
}

func TestEnforcePricingEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeSOWService{}, &fakeRateCardService{snapshot: fullCatalog()}, &fakeWorkspaceService{})

	w := performJSON(s, http.MethodPost, "/api/pricing/enforce", gin.H{
		"rows": []gin.H{
			{"id": "r1", "role": "Creative - Senior Designer", "hours": 20},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Rows       []pricing.Row            `json:"rows"`
			Validation pricing.ValidationResult `json:"validation"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data.Rows, 4)
	assert.Equal(t, "Tech - Head Of - Senior Project Management", resp.Data.Rows[0].Role)
	assert.Equal(t, "Account Management - Senior Account Manager", resp.Data.Rows[3].Role)
	assert.True(t, resp.Data.Validation.IsValid)
}

func TestEnforcePricingMisconfiguredCatalog(t *testing.T) {
	s := newTestServer(t, &fakeSOWService{}, &fakeRateCardService{snapshot: nil}, &fakeWorkspaceService{})

	w := performJSON(s, http.MethodPost, "/api/pricing/enforce", gin.H{"rows": []gin.H{}})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "system_misconfigured")
}

func TestValidatePricingEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeSOWService{}, &fakeRateCardService{snapshot: fullCatalog()}, &fakeWorkspaceService{})

	w := performJSON(s, http.MethodPost, "/api/pricing/validate", gin.H{
		"rows": []gin.H{
			{"id": "r1", "role": "Creative - Senior Designer", "hours": 10, "rate": 120},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Validation  pricing.ValidationResult `json:"validation"`
			Suggestions []string                 `json:"suggestions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.False(t, resp.Data.Validation.IsValid)
	assert.Len(t, resp.Data.Validation.MissingRoles, 3)
	assert.NotEmpty(t, resp.Data.Suggestions)
}

func TestBreakdownPricingEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeSOWService{}, &fakeRateCardService{snapshot: fullCatalog()}, &fakeWorkspaceService{})

	w := performJSON(s, http.MethodPost, "/api/pricing/breakdown", gin.H{
		"rows": []gin.H{
			{"id": "r1", "role": "Creative - Senior Designer", "hours": 10, "rate": 100},
		},
		"discount_percent": 10,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data pricing.Breakdown `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, float64(1000), resp.Data.Subtotal)
	assert.Equal(t, float64(100), resp.Data.DiscountAmount)
	assert.Equal(t, float64(90), resp.Data.GST)
	assert.Equal(t, float64(990), resp.Data.GrandTotal)
}

func TestBreakdownPricingRejectsBadDiscount(t *testing.T) {
	s := newTestServer(t, &fakeSOWService{}, &fakeRateCardService{snapshot: fullCatalog()}, &fakeWorkspaceService{})

	w := performJSON(s, http.MethodPost, "/api/pricing/breakdown", gin.H{
		"rows":             []gin.H{},
		"discount_percent": 150,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_discount")
}

func TestExportBlockedReturnsConflict(t *testing.T) {
	rows := []pricing.Row{{ID: "r1", Role: "Creative - Senior Designer", Hours: 10, Rate: 120}}
	sowSvc := &fakeSOWService{exportErr: &sowdomain.NotExportableError{
		Result:      pricing.Validate(rows),
		Suggestions: pricing.SuggestAdjustments(rows),
	}}
	s := newTestServer(t, sowSvc, &fakeRateCardService{snapshot: fullCatalog()}, &fakeWorkspaceService{})

	w := performJSON(s, http.MethodGet, "/api/sows/123/export/pdf", nil)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "not_exportable")
	assert.Contains(t, w.Body.String(), "mandatory_role_violation")
}

func TestExportCompliantDocument(t *testing.T) {
	rows := []pricing.Row{
		{ID: "1", Role: "Tech - Head Of - Senior Project Management", Hours: 8, Rate: 365},
		{ID: "2", Role: "Tech - Delivery - Project Coordination", Hours: 6, Rate: 110},
		{ID: "3", Role: "Account Management - Senior Account Manager", Hours: 8, Rate: 210},
	}
	sowSvc := &fakeSOWService{view: &sowdomain.ExportView{
		Title:     "Website rebuild",
		Rows:      rows,
		Breakdown: pricing.CalculateBreakdown(rows, 0),
	}}
	s := newTestServer(t, sowSvc, &fakeRateCardService{snapshot: fullCatalog()}, &fakeWorkspaceService{})

	w := performJSON(s, http.MethodGet, "/api/sows/123/export/csv", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "website-rebuild.csv")
	assert.Contains(t, w.Body.String(), "Tech - Head Of - Senior Project Management")
}

func TestWorkspaceInUseConflict(t *testing.T) {
	s := newTestServer(t, &fakeSOWService{}, &fakeRateCardService{snapshot: fullCatalog()},
		&fakeWorkspaceService{deleteErr: workspacedomain.ErrWorkspaceInUse})

	w := performJSON(s, http.MethodDelete, "/api/workspaces/123", nil)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "workspace still contains documents")
}

func TestGenerateUnavailableWhenDisabled(t *testing.T) {
	s := newTestServer(t, &fakeSOWService{}, &fakeRateCardService{snapshot: fullCatalog()}, &fakeWorkspaceService{})

	w := performJSON(s, http.MethodPost, "/api/sows/123/generate", gin.H{"brief": "anything"})

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "service_unavailable")
}
