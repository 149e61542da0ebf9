package middleware

import (
	"github.com/gin-gonic/gin"

	"library-api/internal/shared/utils"
)

// ClientIP resolves the caller address once so the logger and the rate
// limiter agree on it.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClientIPKey, utils.ExtractClientIP(c))
		c.Next()
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString(ClientIPKey); ip != "" {
		return ip
	}
	return utils.ExtractClientIP(c)
}
