package middleware

import (
	"time"

	"github.com/beautique/beautique-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggingMiddleware assigns every request an ID and a request-scoped logger,
// then logs completion at a level matching the response status. Health probes
// are skipped to keep the logs readable.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		startTime := time.Now()

		requestID := c.GetString("request_id")
		if requestID == "" {
			requestID = uuid.NewString()
			c.Set("request_id", requestID)
		}

		log := logger.WithContext(map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
		})
		c.Set("logger", log)

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]interface{}{
			"status_code": statusCode,
			"latency_ms":  time.Since(startTime).Milliseconds(),
			"body_size":   c.Writer.Size(),
		}
		if c.Request.URL.RawQuery != "" {
			fields["query"] = c.Request.URL.RawQuery
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case statusCode >= 500:
			log.Error("Request completed", nil, fields)
		case statusCode >= 400:
			log.Warn("Request completed", fields)
		default:
			log.Info("Request completed", fields)
		}
	}
}

// GetLoggerFromContext retrieves the request-scoped logger, falling back to
// the global logger outside of HTTP handling.
func GetLoggerFromContext(c *gin.Context) *logger.Logger {
	if log, exists := c.Get("logger"); exists {
		if l, ok := log.(*logger.Logger); ok {
			return l
		}
	}
	return logger.Get()
}
