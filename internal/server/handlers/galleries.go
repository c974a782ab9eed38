package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/photo-app/internal/server/utils"
	"github.com/vzahanych/photo-app/internal/storage"
	"github.com/vzahanych/photo-app/internal/store"
	"github.com/vzahanych/photo-app/pkg/logger"
	"go.uber.org/zap"
)

// ImageUploader stores uploaded images and their thumbnails.
type ImageUploader interface {
	UploadImage(ctx context.Context, dir, filename string, data []byte) (*storage.Upload, error)
	Delete(ctx context.Context, key string) error
	DeleteBatch(ctx context.Context, keys []string) error
}

type GalleryHandler struct {
	store     *store.Store
	uploader  ImageUploader
	maxUpload int64
	logger    *zap.Logger
}

func NewGalleryHandler(s *store.Store, uploader ImageUploader, maxUpload int64, logger *zap.Logger) *GalleryHandler {
	return &GalleryHandler{
		store:     s,
		uploader:  uploader,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

func (h *GalleryHandler) List(c *gin.Context) {
	ctx := utils.RequestContext(c)

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondInvalidParams(c, err)
		return
	}

	galleries, err := h.store.ListGalleries(ctx, q.options())
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, galleries)
}

func (h *GalleryHandler) Get(c *gin.Context) {
	ctx := utils.RequestContext(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	g, err := h.store.GetGallery(ctx, id)
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GalleryHandler) Create(c *gin.Context) {
	ctx := utils.RequestContext(c)

	var req GalleryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidParams(c, err)
		return
	}

	g := &store.Gallery{Name: req.Name, Description: req.Description}
	if err := h.store.CreateGallery(ctx, g); err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	ctx := utils.RequestContext(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var patch store.GalleryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondInvalidParams(c, err)
		return
	}

	g, err := h.store.UpdateGallery(ctx, id, patch)
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// Delete removes the gallery and its photos, then their blobs. Blob cleanup
// failures are logged and do not fail the request.
func (h *GalleryHandler) Delete(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	keys, err := h.store.DeleteGallery(ctx, id)
	if err != nil {
		respondStoreError(c, reqLogger, err)
		return
	}
	if err := h.uploader.DeleteBatch(ctx, keys); err != nil {
		reqLogger.Warn("Failed to delete gallery blobs",
			zap.Uint("gallery_id", id), zap.Int("keys", len(keys)), zap.Error(err))
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Gallery deleted successfully"})
}

func (h *GalleryHandler) ListPhotos(c *gin.Context) {
	ctx := utils.RequestContext(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	photos, err := h.store.ListPhotos(ctx, id)
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (h *GalleryHandler) UploadPhoto(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.store.GetGallery(ctx, id); err != nil {
		respondStoreError(c, reqLogger, err)
		return
	}

	file, ok := readUpload(c, h.maxUpload, "photo.jpg")
	if !ok {
		return
	}

	up, err := h.uploader.UploadImage(ctx, fmt.Sprintf("galleries/%d", id), file.filename, file.data)
	if err != nil {
		reqLogger.Error("Photo upload failed", zap.Uint("gallery_id", id), zap.Error(err))
		respondUploadFailed(c, err)
		return
	}

	photo := &store.Photo{
		OriginalURL:  up.OriginalURL,
		ThumbnailURL: up.ThumbnailURL,
		StorageKey:   &up.StorageKey,
		FileSize:     &up.Size,
	}
	if err := h.store.AddPhoto(ctx, id, photo); err != nil {
		if derr := h.uploader.Delete(ctx, up.StorageKey); derr != nil {
			reqLogger.Warn("Failed to remove orphaned upload", zap.String("key", up.StorageKey), zap.Error(derr))
		}
		respondStoreError(c, reqLogger, err)
		return
	}

	reqLogger.Info("Photo uploaded",
		zap.Uint("gallery_id", id),
		zap.Uint("photo_id", photo.ID),
		zap.Int64("size", up.Size))
	c.JSON(http.StatusOK, photo)
}

func (h *GalleryHandler) DeletePhoto(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := logger.For(ctx, h.logger)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	photoID, ok := idParam(c, "photo_id")
	if !ok {
		return
	}

	photo, err := h.store.DeletePhoto(ctx, id, photoID)
	if err != nil {
		respondStoreError(c, reqLogger, err)
		return
	}
	if photo.StorageKey != nil && *photo.StorageKey != "" {
		if err := h.uploader.Delete(ctx, *photo.StorageKey); err != nil {
			reqLogger.Warn("Failed to delete photo blob", zap.String("key", *photo.StorageKey), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Photo deleted successfully"})
}

func (h *GalleryHandler) SetCover(c *gin.Context) {
	ctx := utils.RequestContext(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	photoID, ok := idParam(c, "photo_id")
	if !ok {
		return
	}

	cover, err := h.store.SetCover(ctx, id, photoID)
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, CoverResponse{
		Message:       "Cover photo updated successfully",
		CoverImageURL: cover,
	})
}
