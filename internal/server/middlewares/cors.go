package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured browser origins to call the API.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		headers := c.Writer.Header()

		if allowOrigin := resolveOrigin(origin, allowed); allowOrigin != "" {
			headers.Set("Access-Control-Allow-Origin", allowOrigin)
			headers.Set("Access-Control-Allow-Credentials", "true")
			headers.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			headers.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			headers.Set("Access-Control-Expose-Headers", "X-Request-ID")
			headers.Set("Access-Control-Max-Age", "3600")
			headers.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// resolveOrigin echoes the request origin when allowed. Credentials are
// allowed, so a wildcard entry still echoes the concrete origin.
func resolveOrigin(requestOrigin string, allowed []string) string {
	if requestOrigin == "" {
		return ""
	}
	for _, candidate := range allowed {
		if candidate == "*" || strings.EqualFold(candidate, requestOrigin) {
			return requestOrigin
		}
	}
	return ""
}
