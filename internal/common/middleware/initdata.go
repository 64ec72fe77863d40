package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// InitData validates Telegram Mini App init data supplied in the init_data
// header and stores the parsed user under the "user" context key. Used by the
// read-only dashboard endpoints; the webhook itself authenticates with the
// shared secret instead.
func InitData(botToken string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("init_data")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
			return
		}

		if botToken == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			return
		}

		if err := initdata.Validate(raw, botToken, ttl); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": fmt.Sprintf("Invalid init data: %v", err)})
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to parse init data: %v", err)})
			return
		}

		c.Set("user", parsed.User)
		c.Next()
	}
}
