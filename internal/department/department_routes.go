package department

import (
	"github.com/preyapanngam2004-art/leave-project/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", h.GetAll)
	}
}
