package middleware

import (
	"net/http"
	"strings"

	"github.com/Mateteriya/UpNDown-sub000/internal/config"

	"github.com/gin-gonic/gin"
)

// DevCORS enables credentialed CORS for local development, where the web
// client and the backend run on different ports of the same host.
func DevCORS(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if origin == "" {
			c.Next()
			return
		}

		// Only enable in development to avoid widening the prod surface.
		if cfg.AppEnv != "development" {
			c.Next()
			return
		}

		if isLoopbackOrigin(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func isLoopbackOrigin(origin string) bool {
	for _, scheme := range []string{"http://", "https://"} {
		for _, host := range []string{"localhost:", "127.0.0.1:", "[::1]:"} {
			if strings.HasPrefix(origin, scheme+host) {
				return true
			}
		}
	}
	return false
}
