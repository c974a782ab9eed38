package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/photo-app/internal/aggregator"
	"github.com/vzahanych/photo-app/internal/server/utils"
	"github.com/vzahanych/photo-app/internal/service"
	"github.com/vzahanych/photo-app/pkg/logger"
	"go.uber.org/zap"
)

// ConditionsService is the part of the aggregator the HTTP layer uses.
type ConditionsService interface {
	GetPhotographyConditions(ctx context.Context, location, date string) (*aggregator.PhotographyConditions, error)
	GetTripConditions(ctx context.Context, location string, dates []string) (*aggregator.TripConditions, error)
	GetSunTimes(ctx context.Context, lat, lon float64, date string) (*service.SunTimes, error)
	GetCacheStats() map[string]interface{}
	ClearCache(ctx context.Context) error
}

type ConditionsHandler struct {
	conditions ConditionsService
	logger     *zap.Logger
}

func NewConditionsHandler(conditions ConditionsService, logger *zap.Logger) *ConditionsHandler {
	return &ConditionsHandler{
		conditions: conditions,
		logger:     logger,
	}
}

// GetConditions serves GET /api/conditions?location=&date=.
func (h *ConditionsHandler) GetConditions(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)

	var req ConditionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		respondInvalidParams(c, err)
		return
	}

	reqLogger.Info("Processing conditions request",
		zap.String("location", req.Location),
		zap.String("date", req.Date))

	result, err := h.conditions.GetPhotographyConditions(ctx, req.Location, req.Date)
	if err != nil {
		respondConditionsError(c, reqLogger, err, "Location not found")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSunTimes serves GET /api/sun-times?lat=&lon=&date=.
func (h *ConditionsHandler) GetSunTimes(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)

	var req SunTimesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		respondInvalidParams(c, err)
		return
	}

	times, err := h.conditions.GetSunTimes(ctx, *req.Lat, *req.Lon, req.Date)
	switch {
	case errors.Is(err, aggregator.ErrInvalidDate):
		respondInvalidParams(c, err)
	case errors.Is(err, aggregator.ErrSunTimesMissing):
		respondError(c, http.StatusNotFound, "Sun times unavailable for these coordinates", "SUN_TIMES_UNAVAILABLE", "")
	case err != nil:
		reqLogger.Error("Sun times lookup failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to compute sun times", "AGGREGATION_ERROR", err.Error())
	default:
		c.JSON(http.StatusOK, times)
	}
}

func (h *ConditionsHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.conditions.GetCacheStats())
}

func (h *ConditionsHandler) ClearCache(c *gin.Context) {
	ctx := utils.RequestContext(c)
	if err := h.conditions.ClearCache(ctx); err != nil {
		logger.For(ctx, h.logger).Error("Failed to clear conditions cache", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to clear cache", "CACHE_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Cache cleared"})
}

// respondConditionsError maps aggregator errors. notFound is the message used
// when the location cannot be geocoded.
func respondConditionsError(c *gin.Context, log *zap.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, aggregator.ErrInvalidDate), errors.Is(err, aggregator.ErrTooManyDays):
		respondInvalidParams(c, err)
	case errors.Is(err, aggregator.ErrLocationNotFound):
		respondError(c, http.StatusNotFound, notFound, "LOCATION_NOT_FOUND", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn("Conditions request aborted", zap.Error(err))
		respondError(c, http.StatusGatewayTimeout, "Request timed out", "TIMEOUT", "")
	default:
		log.Error("Failed to get photography conditions", zap.Error(err))
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch photography conditions", "AGGREGATION_ERROR", err.Error())
	}
}
