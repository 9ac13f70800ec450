package pdf

import (
	"github.com/viorizz/swom/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	{
		documents.GET("/orders/:id",
			middleware.RateLimitByTenant(2, 5),
			handler.Generate,
		)
	}
}
