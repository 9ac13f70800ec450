package company

import (
	"github.com/viorizz/swom/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("",
			middleware.RateLimitByTenant(5, 10),
			handler.GetAll,
		)
		companies.GET("/tree",
			middleware.RateLimitByTenant(5, 10),
			handler.GetTree,
		)
		companies.GET("/search",
			middleware.RateLimitByTenant(5, 10),
			handler.Search,
		)
		companies.GET("/:id",
			middleware.RateLimitByTenant(5, 10),
			handler.GetById,
		)
		companies.POST("",
			middleware.RateLimitByTenant(1, 3),
			handler.Create,
		)
		companies.PUT("/:id",
			middleware.RateLimitByTenant(1, 3),
			handler.Update,
		)
		companies.DELETE("/:id",
			middleware.RateLimitByTenant(0.5, 2),
			handler.Delete,
		)
	}
}
