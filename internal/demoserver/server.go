// Package demoserver is a self-contained backend implementing the API
// surface the console client consumes, for demos and local development
// without the real platform.
package demoserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/klasora/console-go/internal/models"
	"github.com/klasora/console-go/pkg/cache"
	"github.com/klasora/console-go/pkg/config"
	"github.com/klasora/console-go/pkg/export"
	"github.com/klasora/console-go/pkg/jobs"
	"github.com/klasora/console-go/pkg/logger"
	corsmiddleware "github.com/klasora/console-go/pkg/middleware/cors"
	reqidmiddleware "github.com/klasora/console-go/pkg/middleware/requestid"
	"github.com/klasora/console-go/pkg/metrics"
	"github.com/klasora/console-go/pkg/storage"
)

// Server wires fixtures, token issuing, and report simulation behind a
// gin router.
type Server struct {
	cfg      config.DemoServerConfig
	logger   *zap.Logger
	metrics  *metrics.Recorder
	validate *validator.Validate

	data          *dataset
	refreshTokens RefreshTokenStore
	signer        *storage.SignedURLSigner
	exporter      *export.CSVExporter

	reportQueue *jobs.Queue
	reportMu    sync.Mutex
	reportJobs  map[string]*models.ReportJob
}

// New builds a Server. Refresh tokens live in redis when an address is
// configured, otherwise in memory.
func New(cfg config.DemoServerConfig, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	data, err := seedDataset()
	if err != nil {
		return nil, fmt.Errorf("seed fixtures: %w", err)
	}

	var tokenStore RefreshTokenStore
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedis(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		tokenStore = NewRedisTokenStore(client)
	} else {
		tokenStore = NewMemoryTokenStore()
	}

	s := &Server{
		cfg:           cfg,
		logger:        log,
		metrics:       metrics.NewRecorder(),
		validate:      validator.New(),
		data:          data,
		refreshTokens: tokenStore,
		signer:        storage.NewSignedURLSigner(cfg.SignedURLKey, cfg.SignedURLTTL),
		exporter:      export.NewCSVExporter(),
		reportJobs:    make(map[string]*models.ReportJob),
	}
	s.reportQueue = jobs.NewQueue("reports", s.runReportJob, jobs.QueueConfig{
		Workers: 1,
		Logger:  log,
	})
	return s, nil
}

// Start launches the report worker. Stop reverses it.
func (s *Server) Start(ctx context.Context) {
	s.reportQueue.Start(ctx)
}

// Stop drains the report worker.
func (s *Server) Stop() {
	s.reportQueue.Stop()
}

// Router assembles the gin engine with the full middleware stack.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(s.logger))
	r.Use(corsmiddleware.New(s.cfg.AllowedOrigins))
	r.Use(metrics.GinMiddleware(s.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", s.handleLogin)
		auth.POST("/refresh", s.handleRefresh)
		auth.GET("/me", s.requireAuth(), s.handleMe)
	}

	tenants := r.Group("/api/tenants")
	{
		tenants.GET("/:slug", s.handleGetTenant)
		tenants.PATCH("/:slug/settings", s.requireAuth(), requireRole(models.RoleAdmin, models.RoleSuperAdmin), s.handlePatchSettings)
	}

	protected := r.Group("/api", s.requireAuth())
	{
		protected.GET("/students", s.handleListStudents)
		protected.GET("/announcements", s.handleListAnnouncements)

		protected.POST("/reports/generate", s.handleGenerateReport)
		protected.GET("/reports/:id", s.handleReportStatus)
		protected.GET("/reports/:id/download", s.handleReportDownload)

		admin := protected.Group("/admin", requireRole(models.RoleSuperAdmin))
		{
			admin.GET("/tenants", s.handleAdminListTenants)
			admin.POST("/tenants", s.handleAdminCreateTenant)
			admin.PATCH("/tenants/:id/status", s.handleAdminSetTenantStatus)
		}
	}

	// Signed URLs carry their own authorization.
	r.GET("/api/reports/files/:token", s.handleReportFile)

	return r
}
