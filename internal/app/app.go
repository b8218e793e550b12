package app

import (
	"os"

	"github.com/preyapanngam2004-art/leave-project/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and wires every module onto the
// router. Redis is optional; without it the API runs with caching and
// idempotency disabled.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		logger.Warn("redis unavailable, continuing without cache and idempotency", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("redis connection established")
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}
