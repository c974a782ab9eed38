package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/photo-app/internal/config"
	"github.com/vzahanych/photo-app/internal/server/handlers"
	"github.com/vzahanych/photo-app/internal/server/middlewares"
	"github.com/vzahanych/photo-app/internal/server/utils"
	"github.com/vzahanych/photo-app/internal/store"
	"github.com/vzahanych/photo-app/pkg/metrics"
	"github.com/vzahanych/photo-app/pkg/telemetry"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// Deps are the collaborators the HTTP layer is wired to.
type Deps struct {
	Conditions handlers.ConditionsService
	Store      *store.Store
	Uploader   handlers.ImageUploader
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
	Tele       *telemetry.Telemetry
}

type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	server *http.Server
	deps   Deps
	logger *zap.Logger
}

func New(cfg *config.Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	utils.RegisterValidators()

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(deps.Logger, "/health/live", "/health/ready", "/metrics"))
	engine.Use(middlewares.RecoveryMiddleware(deps.Logger, true))
	engine.Use(middlewares.CORSMiddleware(cfg.Server.AllowedOrigins))
	engine.Use(middlewares.TelemetryMiddleware(deps.Logger, deps.Tele))
	engine.Use(middlewares.MetricsMiddleware(deps.Metrics))

	s := &Server{
		cfg:    cfg,
		engine: engine,
		deps:   deps,
		logger: deps.Logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	var pinger handlers.Pinger
	if s.deps.Store != nil {
		pinger = s.deps.Store
	}
	health := handlers.NewHealthHandler(s.logger, pinger, s.cfg.Version)
	maxUpload := s.cfg.Storage.MaxUploadSize

	s.engine.GET("/", health.Root)

	// Health endpoints (Kubernetes friendly)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", handlers.NewMetricsHandler(s.deps.Metrics).ServeMetrics)

	api := s.engine.Group("/api")

	conditions := handlers.NewConditionsHandler(s.deps.Conditions, s.logger)
	api.GET("/conditions", conditions.GetConditions)
	api.GET("/conditions/stats", conditions.GetStats)
	api.DELETE("/conditions/cache", conditions.ClearCache)
	api.GET("/sun-times", conditions.GetSunTimes)

	stocks := handlers.NewFilmStockHandler(s.deps.Store, s.logger)
	fs := api.Group("/film-stocks")
	fs.GET("", stocks.List)
	fs.POST("", stocks.Create)
	fs.GET("/:id", stocks.Get)
	fs.PUT("/:id", stocks.Update)
	fs.DELETE("/:id", stocks.Delete)

	galleries := handlers.NewGalleryHandler(s.deps.Store, s.deps.Uploader, maxUpload, s.logger)
	g := api.Group("/galleries")
	g.GET("", galleries.List)
	g.POST("", galleries.Create)
	g.GET("/:id", galleries.Get)
	g.PUT("/:id", galleries.Update)
	g.DELETE("/:id", galleries.Delete)
	g.GET("/:id/photos", galleries.ListPhotos)
	g.POST("/:id/photos", galleries.UploadPhoto)
	g.DELETE("/:id/photos/:photo_id", galleries.DeletePhoto)
	g.PUT("/:id/cover/:photo_id", galleries.SetCover)

	trips := handlers.NewTripHandler(s.deps.Store, s.deps.Uploader, s.deps.Conditions, maxUpload, s.logger)
	t := api.Group("/trips")
	t.GET("", trips.List)
	t.POST("", trips.Create)
	t.GET("/:id", trips.Get)
	t.PUT("/:id", trips.Update)
	t.DELETE("/:id", trips.Delete)
	t.POST("/:id/images", trips.UploadImage)
	t.DELETE("/:id/images/:image_id", trips.DeleteImage)
	t.GET("/:id/weather", trips.Weather)
	t.GET("/:id/conditions", trips.Conditions)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
