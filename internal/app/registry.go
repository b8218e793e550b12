package app

import (
	"database/sql"
	"os"

	"github.com/preyapanngam2004-art/leave-project/internal/auth"
	"github.com/preyapanngam2004-art/leave-project/internal/department"
	"github.com/preyapanngam2004-art/leave-project/internal/employee"
	"github.com/preyapanngam2004-art/leave-project/internal/leave"
	"github.com/preyapanngam2004-art/leave-project/internal/leavetype"
	"github.com/preyapanngam2004-art/leave-project/internal/messaging/kafka"
	"github.com/preyapanngam2004-art/leave-project/internal/middleware"
	"github.com/preyapanngam2004-art/leave-project/internal/report"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/counter"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/upload"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	uploadStore, err := upload.NewStore(uploadDir)
	if err != nil {
		return err
	}

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB, db)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, counterRepo, outboxRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	reportService := report.NewService(reportRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentRepo)
	leaveHandler := leave.NewHandler(leaveService, uploadStore, rdb)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		department.RegisterRoutes(api, departmentHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		leavetype.RegisterRoutes(api, leaveTypeHandler)
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}
