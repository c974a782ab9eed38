package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/photo-app/internal/server/handlers"
	"github.com/vzahanych/photo-app/internal/server/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingMiddleware writes one access log entry per request. Requests to
// quietRoutes (probes, scrapes) are logged at debug level unless they fail.
func LoggingMiddleware(logger *zap.Logger, quietRoutes ...string) gin.HandlerFunc {
	quiet := make(map[string]struct{}, len(quietRoutes))
	for _, r := range quietRoutes {
		quiet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if id := utils.RequestID(c); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if traceID := utils.TraceID(c); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		// Uploads are the only large request bodies.
		if c.Request.ContentLength > 0 && c.ContentType() == gin.MIMEMultipartPOSTForm {
			fields = append(fields, zap.Int64("upload_bytes", c.Request.ContentLength))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		logger.Log(accessLevel(status, route, quiet), "HTTP request", fields...)
	}
}

func accessLevel(status int, route string, quiet map[string]struct{}) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	}
	if _, ok := quiet[route]; ok {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// RecoveryMiddleware turns a handler panic into a 500 ErrorResponse.
func RecoveryMiddleware(logger *zap.Logger, stack bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", utils.RequestID(c)),
			zap.Any("recovered", recovered),
		}
		if stack {
			fields = append(fields, zap.Stack("stack"))
		}

		logger.Error("HTTP panic recovered", fields...)
		c.AbortWithStatusJSON(http.StatusInternalServerError, handlers.ErrorResponse{
			Error: "Internal server error",
			Code:  "INTERNAL_ERROR",
		})
	})
}
