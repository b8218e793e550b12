package auth

import (
	"github.com/preyapanngam2004-art/leave-project/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", middleware.RateLimitByUser(2, 5), handler.Logout)
	}
}
