package employee

import (
	"github.com/djfabrix/vidiemme/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByIP(10, 20),
			handler.GetAll,
		)

		employees.GET("/:serial",
			middleware.RateLimitByIP(10, 20),
			handler.GetBySerial,
		)

		employees.GET("/:serial/tasks",
			middleware.RateLimitByIP(10, 20),
			handler.GetTasks,
		)

		employees.POST("",
			middleware.RateLimitByIP(2, 5),
			handler.Create,
		)

		employees.PUT("/:serial",
			middleware.RateLimitByIP(2, 5),
			handler.Update,
		)

		employees.DELETE("/:serial",
			middleware.RateLimitByIP(1, 2),
			handler.Delete,
		)
	}
}
