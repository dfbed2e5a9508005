package task

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
	tasks := r.Group("/tasks")
	tasks.Use(middleware.ContextLogger(logger))
	{
		tasks.GET("",
			middleware.RateLimitByIP(10, 20),
			handler.GetAll,
		)

		tasks.GET("/:id",
			middleware.RateLimitByIP(10, 20),
			handler.GetByID,
		)

		tasks.POST("",
			middleware.RateLimitByIP(2, 5),
			handler.Create,
		)

		tasks.PUT("/:id",
			middleware.RateLimitByIP(2, 5),
			handler.Update,
		)

		tasks.DELETE("/:id",
			middleware.RateLimitByIP(1, 2),
			handler.Delete,
		)
	}
}
