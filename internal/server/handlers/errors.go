package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/photo-app/internal/server/utils"
	"github.com/vzahanych/photo-app/internal/store"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message, code, details string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

func respondInvalidParams(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "Invalid request parameters", "INVALID_PARAMS", utils.ErrorDetails(err))
}

// respondStoreError maps persistence errors to HTTP responses. Missing rows
// report the entity name, anything else is a 500.
func respondStoreError(c *gin.Context, log *zap.Logger, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, err.Error(), "NOT_FOUND", "")
		return
	}
	log.Error("Database operation failed", zap.Error(err))
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR", "")
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseIDParam(c, name)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid identifier", "INVALID_ID", name+" must be a positive integer")
	}
	return id, ok
}
