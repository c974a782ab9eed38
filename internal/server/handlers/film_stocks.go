package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/photo-app/internal/server/utils"
	"github.com/vzahanych/photo-app/internal/store"
	"github.com/vzahanych/photo-app/pkg/logger"
	"go.uber.org/zap"
)

type FilmStockHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewFilmStockHandler(s *store.Store, logger *zap.Logger) *FilmStockHandler {
	return &FilmStockHandler{store: s, logger: logger}
}

func (h *FilmStockHandler) List(c *gin.Context) {
	ctx := utils.RequestContext(c)

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondInvalidParams(c, err)
		return
	}

	stocks, err := h.store.ListFilmStocks(ctx, q.options())
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}

func (h *FilmStockHandler) Get(c *gin.Context) {
	ctx := utils.RequestContext(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	stock, err := h.store.GetFilmStock(ctx, id)
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

func (h *FilmStockHandler) Create(c *gin.Context) {
	ctx := utils.RequestContext(c)

	var req FilmStockCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidParams(c, err)
		return
	}

	stock := &store.FilmStock{
		Model:      req.Model,
		Format:     req.Format,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
	}
	if err := h.store.CreateFilmStock(ctx, stock); err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

func (h *FilmStockHandler) Update(c *gin.Context) {
	ctx := utils.RequestContext(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var patch store.FilmStockPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondInvalidParams(c, err)
		return
	}

	stock, err := h.store.UpdateFilmStock(ctx, id, patch)
	if err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

func (h *FilmStockHandler) Delete(c *gin.Context) {
	ctx := utils.RequestContext(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteFilmStock(ctx, id); err != nil {
		respondStoreError(c, logger.For(ctx, h.logger), err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Film stock deleted successfully"})
}
