package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/mall/pkg/telemetry/correlation"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-Id"

// GinMiddleware attaches a request-scoped logger carrying a request id and
// logs request completion.
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = correlation.NewRequestID()
		}

		ctx := correlation.WithRequestID(c.Request.Context(), requestID)
		reqLog := log.With(zap.String("request_id", requestID))
		ctx = WithLogger(ctx, reqLog)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, zap.Error(lastErr.Err))
		}

		switch {
		case c.Writer.Status() >= 500:
			reqLog.Error("http.request", fields...)
		case c.Writer.Status() >= 400:
			reqLog.Warn("http.request", fields...)
		default:
			reqLog.Info("http.request", fields...)
		}
	}
}
