package project

import (
	"github.com/viorizz/swom/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.GET("",
			middleware.RateLimitByTenant(5, 10),
			handler.GetAll,
		)
		projects.GET("/:id",
			middleware.RateLimitByTenant(5, 10),
			handler.GetById,
		)
		projects.GET("/:id/companies",
			middleware.RateLimitByTenant(5, 10),
			handler.GetWithCompanies,
		)
		projects.POST("",
			middleware.RateLimitByTenant(1, 3),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		projects.POST("/with-companies",
			middleware.RateLimitByTenant(1, 3),
			middleware.Idempotency(rdb),
			handler.CreateWithCompanies,
		)
		projects.PUT("/:id",
			middleware.RateLimitByTenant(1, 3),
			handler.Update,
		)
		projects.DELETE("/:id",
			middleware.RateLimitByTenant(0.5, 2),
			handler.Delete,
		)
	}
}
