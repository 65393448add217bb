package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-admin-api/pkg/middleware/requestid"
)

// Audit logs every successful state-changing request made on resource.
func Audit(log *zap.Logger, resource string) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("audit")
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		log.Info("admin mutation",
			zap.String("resource", resource),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("record_id", c.Param("id")),
			zap.Int("status", c.Writer.Status()),
			zap.String("session_id", SessionID(c)),
			zap.String("request_id", requestid.Value(c)),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
