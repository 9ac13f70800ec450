package pendingcompany_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/viorizz/swom/internal/pendingcompany"
	pendingcompanyerrors "github.com/viorizz/swom/internal/pendingcompany/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePendingService struct {
	listByTenantFn  func(ctx context.Context, tenantID string) ([]pendingcompany.PendingCompanyResponse, error)
	listByProjectFn func(ctx context.Context, tenantID, projectID string) ([]pendingcompany.PendingCompanyResponse, error)
	completeFn      func(ctx context.Context, tenantID, pendingID string, req pendingcompany.CompletePendingCompanyRequest) (pendingcompany.CompletePendingCompanyResponse, error)
	removeFn        func(ctx context.Context, tenantID, pendingID string) error
}

func (f *fakePendingService) ListByTenant(ctx context.Context, tenantID string) ([]pendingcompany.PendingCompanyResponse, error) {
	return f.listByTenantFn(ctx, tenantID)
}

func (f *fakePendingService) ListByProject(ctx context.Context, tenantID, projectID string) ([]pendingcompany.PendingCompanyResponse, error) {
	return f.listByProjectFn(ctx, tenantID, projectID)
}

func (f *fakePendingService) Complete(ctx context.Context, tenantID, pendingID string, req pendingcompany.CompletePendingCompanyRequest) (pendingcompany.CompletePendingCompanyResponse, error) {
	return f.completeFn(ctx, tenantID, pendingID, req)
}

func (f *fakePendingService) Remove(ctx context.Context, tenantID, pendingID string) error {
	return f.removeFn(ctx, tenantID, pendingID)
}

func TestPendingCompanyHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("project_id query narrows the listing", func(t *testing.T) {
		projectID := uuid.New().String()
		svc := &fakePendingService{
			listByProjectFn: func(ctx context.Context, tenantID, pid string) ([]pendingcompany.PendingCompanyResponse, error) {
				assert.Equal(t, "tenant-a", tenantID)
				assert.Equal(t, projectID, pid)
				return []pendingcompany.PendingCompanyResponse{
					{ID: uuid.New().String(), ProjectID: projectID, Name: "Statik Partner AG", Type: "engineer"},
				}, nil
			},
			listByTenantFn: func(ctx context.Context, tenantID string) ([]pendingcompany.PendingCompanyResponse, error) {
				t.Fatal("tenant-wide listing must not run when project_id is set")
				return nil, nil
			},
		}

		h := pendingcompany.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/pending-companies?project_id="+projectID, nil)
		c.Set("tenant_id", "tenant-a")

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp []pendingcompany.PendingCompanyResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Len(t, resp, 1)
		assert.Equal(t, "engineer", resp[0].Type)
	})

	t.Run("no query lists the whole tenant", func(t *testing.T) {
		svc := &fakePendingService{
			listByTenantFn: func(ctx context.Context, tenantID string) ([]pendingcompany.PendingCompanyResponse, error) {
				return []pendingcompany.PendingCompanyResponse{}, nil
			},
		}

		h := pendingcompany.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/pending-companies", nil)
		c.Set("tenant_id", "tenant-a")

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPendingCompanyHandler_Complete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success returns the created company id", func(t *testing.T) {
		pendingID := uuid.New().String()
		companyID := uuid.New().String()

		svc := &fakePendingService{
			completeFn: func(ctx context.Context, tenantID, pid string, req pendingcompany.CompletePendingCompanyRequest) (pendingcompany.CompletePendingCompanyResponse, error) {
				assert.Equal(t, pendingID, pid)
				assert.NotNil(t, req.Email)
				assert.Equal(t, "info@statik.ch", *req.Email)
				return pendingcompany.CompletePendingCompanyResponse{CompanyID: companyID}, nil
			},
		}

		h := pendingcompany.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/pending-companies/"+pendingID+"/complete", strings.NewReader(`{"email":"info@statik.ch"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: pendingID}}
		c.Set("tenant_id", "tenant-a")

		h.Complete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp pendingcompany.CompletePendingCompanyResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, companyID, resp.CompanyID)
	})

	t.Run("malformed email rejected by binding", func(t *testing.T) {
		svc := &fakePendingService{
			completeFn: func(ctx context.Context, tenantID, pid string, req pendingcompany.CompletePendingCompanyRequest) (pendingcompany.CompletePendingCompanyResponse, error) {
				t.Fatal("service must not be called on binding failure")
				return pendingcompany.CompletePendingCompanyResponse{}, nil
			},
		}

		h := pendingcompany.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/pending-companies/x/complete", strings.NewReader(`{"email":"not-an-email"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		c.Set("tenant_id", "tenant-a")

		h.Complete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown pending id yields not found", func(t *testing.T) {
		svc := &fakePendingService{
			completeFn: func(ctx context.Context, tenantID, pid string, req pendingcompany.CompletePendingCompanyRequest) (pendingcompany.CompletePendingCompanyResponse, error) {
				return pendingcompany.CompletePendingCompanyResponse{}, pendingcompanyerrors.ErrPendingCompanyNotFound
			},
		}

		h := pendingcompany.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/pending-companies/x/complete", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		c.Set("tenant_id", "tenant-a")

		h.Complete(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestPendingCompanyHandler_Remove(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success returns no content", func(t *testing.T) {
		pendingID := uuid.New().String()
		svc := &fakePendingService{
			removeFn: func(ctx context.Context, tenantID, pid string) error {
				assert.Equal(t, pendingID, pid)
				return nil
			},
		}

		h := pendingcompany.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/pending-companies/"+pendingID, nil)
		c.Params = gin.Params{{Key: "id", Value: pendingID}}
		c.Set("tenant_id", "tenant-a")

		h.Remove(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
