package middleware

import (
	"fashionstore/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's request id or generates one, and exposes
// it to the request logger and the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
