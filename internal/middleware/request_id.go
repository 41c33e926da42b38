package middleware

import (
	"time"

	"dropout-srv/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags the request context with a request id and logs one line per request.
func (m Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := log.WithFields(c.Request.Context(), m.l, "request_id", requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		m.l.Infof(c.Request.Context(), "%s %s | Status: %d | Latency: %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
