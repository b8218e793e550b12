package middleware

import (
	"github.com/preyapanngam2004-art/leave-project/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger decorates a request-scoped logger with tracing metadata and
// propagates it to the standard context so the service and repo layers can
// log without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = uuid.New().String()
			c.Header("X-Request-ID", rid)
		}

		uid := c.GetString("user_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", uid),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
