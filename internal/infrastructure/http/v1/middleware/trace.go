package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agriaccount/internal/core/appctx"
)

const HeaderRequestID = "X-Request-ID"

// Trace middleware attaches a request ID to the context. The ID is taken
// from the X-Request-ID header when the caller supplies one, otherwise
// generated. Log lines and audit rows carry it.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		trace := &appctx.TraceContext{
			RequestID: requestID,
		}

		ctx := appctx.WithTrace(c.Request.Context(), trace)
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
