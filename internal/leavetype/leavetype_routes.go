package leavetype

import (
	"github.com/preyapanngam2004-art/leave-project/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", h.GetAll)
	}
}
