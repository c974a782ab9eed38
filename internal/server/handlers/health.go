package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	logger    *zap.Logger
	db        Pinger
	version   string
	startTime time.Time
}

func NewHealthHandler(logger *zap.Logger, db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message: "Photography App API",
		Version: h.version,
	})
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "alive",
		Uptime: time.Since(h.startTime).String(),
	})
}

// Readiness fails while the database cannot be reached.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{}
	status := http.StatusOK
	state := "ready"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.String("check", "database"), zap.Error(err))
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
			state = "unavailable"
		} else {
			checks["database"] = "ok"
		}
	}

	c.JSON(status, HealthResponse{
		Status: state,
		Uptime: time.Since(h.startTime).String(),
		Checks: checks,
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
