package middleware

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"recstudio/internal/metrics"
	"recstudio/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestLogger tags every request with an id, logs it on completion and
// recovers panics into a 500 envelope.
func RequestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error().
					Str("request_id", requestID).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("panic", recovered).
					Bytes("stack", debug.Stack()).
					Msg("request panicked")

				response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
				c.Abort()
			}

			status := c.Writer.Status()
			event := logger.Info()
			if status >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("request_id", requestID).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", status).
				Int64("user_id", c.GetInt64("user_id")).
				Dur("latency", time.Since(start)).
				Msg("request")

			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			metrics.IncHTTP(c.Request.Method, route, strconv.Itoa(status))
		}()

		c.Next()
	}
}
