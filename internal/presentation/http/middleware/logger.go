package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware tags every request with an X-Request-ID and logs a
// one-line summary after the handler runs. The same ID ends up in the
// response envelope meta, so a support ticket can be matched to a log line.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		// Client-supplied IDs may be arbitrarily short.
		shortID := requestID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		log.Printf("[%s] %s | %d | %v | %s | %s",
			shortID,
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", shortID, e.Err)
		}
	}
}
