package navigation

import (
	"github.com/viorizz/swom/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	nav := r.Group("/navigation")
	nav.Use(middleware.AuthMiddleware())
	{
		nav.GET("/tree",
			middleware.RateLimitByTenant(5, 10),
			handler.GetTree,
		)
	}
}
