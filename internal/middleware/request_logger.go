package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/team-collab-api/internal/constants"
	"github.com/yukikurage/team-collab-api/internal/logging"
)

// RequestLogger tags every request with an ID and logs one line when it completes.
// A well-formed incoming X-Request-ID is reused.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.RequestIDHeader, requestID)

		reqLog := log.With("request_id", requestID)

		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if userID, ok := GetUserID(c); ok {
			args = append(args, "user_id", userID)
		}

		ctx := c.Request.Context()
		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLog.Error(ctx, "request failed", args...)
		case status >= 400:
			reqLog.Warn(ctx, "request rejected", args...)
		default:
			reqLog.Info(ctx, "request handled", args...)
		}
	}
}
