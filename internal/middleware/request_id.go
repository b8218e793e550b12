package middleware

import (
	"github.com/preyapanngam2004-art/leave-project/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set("request_id", rid)

		// Propagate into the standard context so services can log it
		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", rid)
		c.Next()
	}
}
