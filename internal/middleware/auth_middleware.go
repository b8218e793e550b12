package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "github.com/preyapanngam2004-art/leave-project/internal/auth/errors"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Employee ID not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Set("role", role)

		c.Next()
	}
}

// RequireRoles gates a route to the fixed role set (EMPLOYEE, MANAGER, HR).
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := strings.ToUpper(strings.TrimSpace(c.GetString("role")))

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
		c.Abort()
	}
}
