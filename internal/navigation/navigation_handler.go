package navigation

import (
	"net/http"

	"github.com/viorizz/swom/internal/shared/apperror"
	"github.com/viorizz/swom/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetTree(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	resp, err := h.service.GetTree(c.Request.Context(), tenantID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
