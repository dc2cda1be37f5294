package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"visitboard-server/internal/utils"
)

// InternalAuthMiddleware guards internal job endpoints with a shared
// secret, accepted either as "Authorization: Bearer <secret>" or as a
// ?secret= query parameter (for schedulers that cannot set headers).
func InternalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			utils.Unauthorized(c, "Internal endpoint is disabled: no secret configured")
			c.Abort()
			return
		}

		presented := c.Query("secret")
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				utils.Unauthorized(c, "Invalid authorization header format")
				c.Abort()
				return
			}
			presented = parts[1]
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			utils.Unauthorized(c, "Invalid internal token")
			c.Abort()
			return
		}

		c.Next()
	}
}
