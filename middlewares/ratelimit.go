package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kb-server/cache"
)

// RateLimit rejects clients that exceed the window's per-IP budget with
// 429 and the standard envelope.
func RateLimit(window *cache.HitWindow, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !window.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": message,
			})
			return
		}
		c.Next()
	}
}
