package pendingcompany

import (
	"github.com/viorizz/swom/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	pending := r.Group("/pending-companies")
	pending.Use(middleware.AuthMiddleware())
	{
		pending.GET("",
			middleware.RateLimitByTenant(5, 10),
			handler.List,
		)
		pending.POST("/:id/complete",
			middleware.RateLimitByTenant(1, 3),
			handler.Complete,
		)
		pending.DELETE("/:id",
			middleware.RateLimitByTenant(1, 3),
			handler.Remove,
		)
	}
}
