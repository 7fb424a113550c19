package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kb-server/auth"
)

// UserIDKey is where the authenticated user's id lands in the gin context.
const UserIDKey = "user_id"

// Authenticate guards a route group with the bearer token check. A missing
// token is 401; a present but unverifiable token is 403.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Access token required",
			})
			return
		}

		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the id placed by Authenticate.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// bearerToken takes the second space-separated word of the header. The
// scheme word is not inspected, so a wrong scheme carries its credential
// through to verification (and fails there) instead of reading as absent.
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
