package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgLog "asana-chatbot/pkg/log"
)

const headerRequestID = "X-Request-ID"

// RequestID attaches a request id to the context so every log line from the
// request can be correlated. An inbound X-Request-ID is honored; otherwise a
// fresh uuid is generated. The id is echoed back in the response header.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := pkgLog.ContextWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(headerRequestID, requestID)

		c.Next()
	}
}
