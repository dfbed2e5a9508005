package app

import (
	"database/sql"

	"github.com/djfabrix/vidiemme/internal/employee"
	"github.com/djfabrix/vidiemme/internal/messaging/kafka"
	"github.com/djfabrix/vidiemme/internal/middleware"
	"github.com/djfabrix/vidiemme/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerModules wires repositories, services, handlers and routes.
// Repositories are constructed exactly once here and passed down by
// reference; nothing holds hidden global state.
func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	router.Use(middleware.RequestID())

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, taskRepo, outboxRepo, rdb)
	taskService := task.NewService(db, taskRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	taskHandler := task.NewHandler(taskService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, logger)
		task.RegisterRoutes(api, taskHandler, logger)
	}

	return nil
}
