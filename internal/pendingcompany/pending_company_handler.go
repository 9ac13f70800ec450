package pendingcompany

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

// List returns the tenant's pending companies, optionally narrowed to one
// project via ?project_id=.
func (h *Handler) List(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	projectID := c.Query("project_id")

	var (
		resp []PendingCompanyResponse
		err  error
	)
	if projectID != "" {
		resp, err = h.service.ListByProject(c.Request.Context(), tenantID, projectID)
	} else {
		resp, err = h.service.ListByTenant(c.Request.Context(), tenantID)
	}
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Complete(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	id := c.Param("id")

	var req CompletePendingCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Complete(c.Request.Context(), tenantID, id, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Remove(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	id := c.Param("id")

	if err := h.service.Remove(c.Request.Context(), tenantID, id); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	c.Status(http.StatusNoContent)
}
