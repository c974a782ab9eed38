package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/photo-app/internal/aggregator"
	"github.com/vzahanych/photo-app/internal/server/utils"
	"github.com/vzahanych/photo-app/internal/store"
	"github.com/vzahanych/photo-app/pkg/logger"
	"go.uber.org/zap"
)

const destinationNotFound = "Could not find weather information for this destination"

type TripHandler struct {
	store      *store.Store
	uploader   ImageUploader
	conditions ConditionsService
	maxUpload  int64
	logger     *zap.Logger
}

func NewTripHandler(s *store.Store, uploader ImageUploader, conditions ConditionsService, maxUpload int64, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		store:      s,
		uploader:   uploader,
		conditions: conditions,
		maxUpload:  maxUpload,
		logger:     logger,
	}
}

func (h *TripHandler) List(c *gin.Context) {
	ctx := utils.RequestContext(c)

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondInvalidParams(c, err)
		return
	}

	trips, err := h.store.ListTrips(ctx, q.options())
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (h *TripHandler) Get(c *gin.Context) {
	ctx := utils.RequestContext(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	trip, err := h.store.GetTrip(ctx, id)
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) Create(c *gin.Context) {
	ctx := utils.RequestContext(c)

	var req TripCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidParams(c, err)
		return
	}

	trip := &store.Trip{
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	if err := h.store.CreateTrip(ctx, trip); err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) Update(c *gin.Context) {
	ctx := utils.RequestContext(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var patch store.TripPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondInvalidParams(c, err)
		return
	}

	trip, err := h.store.UpdateTrip(ctx, id, patch)
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) Delete(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	keys, err := h.store.DeleteTrip(ctx, id)
	if err != nil {
		respondStoreError(c, reqLogger, err)
		return
	}
	if err := h.uploader.DeleteBatch(ctx, keys); err != nil {
		reqLogger.Warn("Failed to delete trip blobs",
			zap.Uint("trip_id", id), zap.Int("keys", len(keys)), zap.Error(err))
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Trip deleted successfully"})
}

// UploadImage stores an inspiration image with an optional caption form field.
func (h *TripHandler) UploadImage(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.store.GetTrip(ctx, id); err != nil {
		respondStoreError(c, reqLogger, err)
		return
	}

	file, ok := readUpload(c, h.maxUpload, "image.jpg")
	if !ok {
		return
	}

	up, err := h.uploader.UploadImage(ctx, fmt.Sprintf("trips/%d", id), file.filename, file.data)
	if err != nil {
		reqLogger.Error("Trip image upload failed", zap.Uint("trip_id", id), zap.Error(err))
		respondUploadFailed(c, err)
		return
	}

	img := &store.TripImage{
		ImageURL:     up.OriginalURL,
		ThumbnailURL: up.ThumbnailURL,
		StorageKey:   &up.StorageKey,
		FileSize:     &up.Size,
	}
	if caption, ok := c.GetPostForm("caption"); ok {
		img.Caption = &caption
	}

	if err := h.store.AddTripImage(ctx, id, img); err != nil {
		if derr := h.uploader.Delete(ctx, up.StorageKey); derr != nil {
			reqLogger.Warn("Failed to remove orphaned upload", zap.String("key", up.StorageKey), zap.Error(derr))
		}
		respondStoreError(c, reqLogger, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

func (h *TripHandler) DeleteImage(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := idParam(c, "image_id")
	if !ok {
		return
	}

	img, err := h.store.DeleteTripImage(ctx, id, imageID)
	if err != nil {
		respondStoreError(c, reqLogger, err)
		return
	}
	if img.StorageKey != nil && *img.StorageKey != "" {
		if err := h.uploader.Delete(ctx, *img.StorageKey); err != nil {
			reqLogger.Warn("Failed to delete trip image blob", zap.String("key", *img.StorageKey), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Image deleted successfully"})
}

// Weather returns the photography conditions at the trip destination. The
// date defaults to the trip start date.
func (h *TripHandler) Weather(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	trip, ok := h.tripWithDestination(c, id)
	if !ok {
		return
	}

	var req TripWeatherRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondInvalidParams(c, err)
		return
	}

	date := req.Date
	if date == "" && trip.StartDate != nil {
		date = trip.StartDate.String()
	}

	result, err := h.conditions.GetPhotographyConditions(ctx, *trip.Destination, date)
	if err != nil {
		respondConditionsError(c, reqLogger, err, destinationNotFound)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Conditions returns per-day photography conditions for every date of the
// trip. A trip without an end date covers its start date only.
func (h *TripHandler) Conditions(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	trip, ok := h.tripWithDestination(c, id)
	if !ok {
		return
	}
	if trip.StartDate == nil {
		respondError(c, http.StatusBadRequest, "Trip has no start date set", "NO_DATES", "")
		return
	}

	end := trip.StartDate
	if trip.EndDate != nil {
		end = trip.EndDate
	}
	dates, err := aggregator.DateRange(trip.StartDate.String(), end.String())
	if err != nil {
		respondInvalidParams(c, err)
		return
	}

	result, err := h.conditions.GetTripConditions(ctx, *trip.Destination, dates)
	if err != nil {
		respondConditionsError(c, reqLogger, err, destinationNotFound)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TripHandler) tripWithDestination(c *gin.Context, id uint) (*store.Trip, bool) {
	ctx := utils.RequestContext(c)
	trip, err := h.store.GetTrip(ctx, id)
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return nil, false
	}
	if trip.Destination == nil || strings.TrimSpace(*trip.Destination) == "" {
		respondError(c, http.StatusBadRequest, "Trip has no destination set", "NO_DESTINATION", "")
		return nil, false
	}
	return trip, true
}
