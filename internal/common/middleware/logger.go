package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/common/logger"
)

// RequestIDHeader carries the correlation id back to the caller.
const RequestIDHeader = "X-Request-ID"

// Logger emits one structured line per request. An inbound X-Request-ID is
// honored, otherwise a fresh UUID is assigned and echoed in the response.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set(RequestIDHeader, reqID)

		c.Next()

		logger.Info().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("body_size", c.Writer.Size()).
			Msg("Request processed")
	}
}
