package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderXRequestID = "X-Request-ID"

	contextKeyRequestID = "request_id"
)

// RequestID keeps a caller-supplied X-Request-ID when it is a UUID and
// generates one otherwise. The id is echoed in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := ""
		if raw := c.GetHeader(HeaderXRequestID); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				rid = id.String()
			}
		}
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(contextKeyRequestID, rid)
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}

// RequestIDFrom returns the id set by RequestID, or "" outside of it.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}
