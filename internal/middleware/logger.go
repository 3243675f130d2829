package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger logs one line per request: /api/* at info (warn for 5xx),
// everything else at debug. Requests made by a resolved principal carry
// user_id and role.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		status := c.Writer.Status()

		level := zapcore.DebugLevel
		if strings.HasPrefix(path, "/api/") {
			level = zapcore.InfoLevel
			if status >= 500 {
				level = zapcore.WarnLevel
			}
		}
		ce := log.Check(level, "HTTP")
		if ce == nil {
			return
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if p := Principal(c); p != nil {
			fields = append(fields, zap.String("user_id", p.UserID.String()), zap.String("role", string(p.Role)))
		}
		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.IsValid() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}
		ce.Write(fields...)
	}
}
