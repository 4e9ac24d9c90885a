package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/sowforge/internal/ai"
	"github.com/smallbiznis/sowforge/internal/config"
	"github.com/smallbiznis/sowforge/internal/export"
	"github.com/smallbiznis/sowforge/internal/observability"
	obsmiddleware "github.com/smallbiznis/sowforge/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/sowforge/internal/observability/metrics"
	"github.com/smallbiznis/sowforge/internal/ratecard"
	ratecarddomain "github.com/smallbiznis/sowforge/internal/ratecard/domain"
	"github.com/smallbiznis/sowforge/internal/sow"
	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
	"github.com/smallbiznis/sowforge/internal/workspace"
	workspacedomain "github.com/smallbiznis/sowforge/internal/workspace/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	ratecard.Module,
	workspace.Module,
	sow.Module,
	ai.Module,
	export.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	ratecardSvc  ratecarddomain.Service
	workspaceSvc workspacedomain.Service
	sowSvc       sowdomain.Service
	exporter     export.Exporter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	RatecardSvc  ratecarddomain.Service
	WorkspaceSvc workspacedomain.Service
	SowSvc       sowdomain.Service
	Exporter     export.Exporter
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		ratecardSvc:  p.RatecardSvc,
		workspaceSvc: p.WorkspaceSvc,
		sowSvc:       p.SowSvc,
		exporter:     p.Exporter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/rate-card", s.ListRateCard)
	api.POST("/rate-card", s.CreateRateCardEntry)
	api.PATCH("/rate-card/:id", s.UpdateRateCardEntry)
	api.DELETE("/rate-card/:id", s.DeleteRateCardEntry)

	api.GET("/workspaces", s.ListWorkspaces)
	api.POST("/workspaces", s.CreateWorkspace)
	api.GET("/workspaces/:id", s.GetWorkspaceByID)
	api.DELETE("/workspaces/:id", s.DeleteWorkspace)

	api.GET("/sows", s.ListSOWs)
	api.POST("/sows", s.CreateSOW)
	api.GET("/sows/:id", s.GetSOWByID)
	api.PATCH("/sows/:id", s.UpdateSOW)
	api.DELETE("/sows/:id", s.DeleteSOW)
	api.POST("/sows/:id/generate", s.GenerateSOW)
	api.GET("/sows/:id/export/pdf", s.ExportSOWPDF)
	api.GET("/sows/:id/export/csv", s.ExportSOWCSV)

	api.POST("/pricing/enforce", s.EnforcePricing)
	api.POST("/pricing/validate", s.ValidatePricing)
	api.POST("/pricing/breakdown", s.BreakdownPricing)
}
