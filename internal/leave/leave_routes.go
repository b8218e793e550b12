package leave

import (
	"github.com/preyapanngam2004-art/leave-project/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.RateLimitByUser(5, 10), h.Submit)
		leaves.GET("/balances/:empId", h.Balances)
		leaves.GET("/history/:empId", h.History)

		managerOnly := leaves.Group("")
		managerOnly.Use(middleware.RequireRoles(roleManager, roleHR))
		{
			managerOnly.GET("/pending/:managerId", h.Pending)
			managerOnly.POST("/:id/decision", middleware.Idempotency(rdb), h.Decide)
		}
	}
}
