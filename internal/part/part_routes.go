package part

import (
	"github.com/viorizz/swom/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	parts := r.Group("/parts")
	parts.Use(middleware.AuthMiddleware())
	{
		parts.GET("",
			middleware.RateLimitByTenant(5, 10),
			handler.ListByProject,
		)
		parts.POST("",
			middleware.RateLimitByTenant(1, 3),
			handler.Create,
		)
		parts.DELETE("/:id",
			middleware.RateLimitByTenant(0.5, 2),
			handler.Delete,
		)
	}
}
