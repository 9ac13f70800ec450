package order

import (
	"github.com/viorizz/swom/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.GET("",
			middleware.RateLimitByTenant(5, 10),
			handler.GetAll,
		)
		orders.GET("/:id",
			middleware.RateLimitByTenant(5, 10),
			handler.GetById,
		)
		orders.GET("/:id/items",
			middleware.RateLimitByTenant(5, 10),
			handler.ListItems,
		)
		orders.POST("",
			middleware.RateLimitByTenant(1, 3),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		orders.POST("/:id/items",
			middleware.RateLimitByTenant(1, 3),
			handler.AddItem,
		)
		orders.POST("/:id/submit",
			middleware.RateLimitByTenant(1, 3),
			handler.Submit,
		)
		orders.POST("/:id/pdf",
			middleware.RateLimitByTenant(1, 3),
			handler.RequestPDF,
		)
		orders.DELETE("/:id",
			middleware.RateLimitByTenant(0.5, 2),
			handler.Delete,
		)
	}
}
