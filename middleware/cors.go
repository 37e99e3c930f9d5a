package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// NewCORSMiddleware returns a middleware that answers preflights and
// stamps CORS headers on every response. The request's Origin is
// echoed back only when it exactly matches the configured allow list;
// anything else falls back to the canonical production origin.
func NewCORSMiddleware() gin.HandlerFunc {
	allowed := viper.GetStringSlice("cors.allowed_origins")
	fallback := viper.GetString("host.origin")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		corsOrigin := fallback
		if slices.Contains(allowed, origin) {
			corsOrigin = origin
		}

		c.Header("Access-Control-Allow-Origin", corsOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
