package report

import (
	"github.com/preyapanngam2004-art/leave-project/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.RequireRoles("MANAGER", "HR"))
	{
		reports.GET("/leaves", h.GetLeaves)
		reports.GET("/leaves/export", h.ExportLeaves)
	}
}
