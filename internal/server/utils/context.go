package utils

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/photo-app/pkg/logger"
	"go.opentelemetry.io/otel/trace"
)

const requestIDKey = "request_id"

// SetRequestID records id on c and on the request context, where logger.For
// picks it up.
func SetRequestID(c *gin.Context, id string) {
	c.Set(requestIDKey, id)
	c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// SetRequestContext replaces the request context, e.g. with one carrying a span.
func SetRequestContext(c *gin.Context, ctx context.Context) {
	c.Request = c.Request.WithContext(ctx)
}

// RequestContext is the context handlers pass downstream. It carries the
// request span and request ID.
func RequestContext(c *gin.Context) context.Context {
	return c.Request.Context()
}

// TraceID returns the trace of the request span, or "" when untraced.
func TraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(RequestContext(c)); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
