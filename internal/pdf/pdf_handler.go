package pdf

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

func (h *Handler) Generate(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	orderID := c.Param("id")

	resp, err := h.service.Generate(c.Request.Context(), tenantID, orderID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
