package order_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/viorizz/swom/internal/order"
	ordererrors "github.com/viorizz/swom/internal/order/errors"

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

type fakeOrderService struct {
	createFn        func(ctx context.Context, tenantID string, req order.CreateOrderRequest) (order.OrderResponse, error)
	getAllFn        func(ctx context.Context, tenantID string) ([]order.OrderResponse, error)
	getByIDFn       func(ctx context.Context, tenantID, id string) (order.OrderResponse, error)
	listByProjectFn func(ctx context.Context, tenantID, projectID string) ([]order.OrderResponse, error)
	submitFn        func(ctx context.Context, tenantID, id string) (order.OrderResponse, error)
	deleteFn        func(ctx context.Context, tenantID, id string) error
	addItemFn       func(ctx context.Context, tenantID, orderID string, req order.AddItemRequest) (order.OrderItemResponse, error)
	listItemsFn     func(ctx context.Context, tenantID, orderID string) ([]order.OrderItemResponse, error)
	requestPDFFn    func(ctx context.Context, tenantID, id string) error
}

func (f *fakeOrderService) Create(ctx context.Context, tenantID string, req order.CreateOrderRequest) (order.OrderResponse, error) {
	return f.createFn(ctx, tenantID, req)
}

func (f *fakeOrderService) GetAll(ctx context.Context, tenantID string) ([]order.OrderResponse, error) {
	return f.getAllFn(ctx, tenantID)
}

func (f *fakeOrderService) GetByID(ctx context.Context, tenantID, id string) (order.OrderResponse, error) {
	return f.getByIDFn(ctx, tenantID, id)
}

func (f *fakeOrderService) ListByProject(ctx context.Context, tenantID, projectID string) ([]order.OrderResponse, error) {
	return f.listByProjectFn(ctx, tenantID, projectID)
}

func (f *fakeOrderService) Submit(ctx context.Context, tenantID, id string) (order.OrderResponse, error) {
	return f.submitFn(ctx, tenantID, id)
}

func (f *fakeOrderService) Delete(ctx context.Context, tenantID, id string) error {
	return f.deleteFn(ctx, tenantID, id)
}

func (f *fakeOrderService) AddItem(ctx context.Context, tenantID, orderID string, req order.AddItemRequest) (order.OrderItemResponse, error) {
	return f.addItemFn(ctx, tenantID, orderID, req)
}

func (f *fakeOrderService) ListItems(ctx context.Context, tenantID, orderID string) ([]order.OrderItemResponse, error) {
	return f.listItemsFn(ctx, tenantID, orderID)
}

func (f *fakeOrderService) RequestPDF(ctx context.Context, tenantID, id string) error {
	return f.requestPDFFn(ctx, tenantID, id)
}

func TestOrderHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("project_id query switches to project listing", func(t *testing.T) {
		projectID := uuid.New().String()
		svc := &fakeOrderService{
			listByProjectFn: func(ctx context.Context, tenantID, pid string) ([]order.OrderResponse, error) {
				assert.Equal(t, projectID, pid)
				return []order.OrderResponse{{ID: uuid.New().String(), DraftName: "Bodenplatte"}}, nil
			},
			getAllFn: func(ctx context.Context, tenantID string) ([]order.OrderResponse, error) {
				t.Fatal("tenant-wide listing must not run when project_id is set")
				return nil, nil
			},
		}

		h := order.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/orders?project_id="+projectID, nil)
		c.Set("tenant_id", "tenant-a")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp []order.OrderResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Len(t, resp, 1)
	})
}

func TestOrderHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing project id rejected by binding", func(t *testing.T) {
		svc := &fakeOrderService{
			createFn: func(ctx context.Context, tenantID string, req order.CreateOrderRequest) (order.OrderResponse, error) {
				t.Fatal("service must not be called on binding failure")
				return order.OrderResponse{}, nil
			},
		}

		h := order.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"draft_name":"Bodenplatte"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("tenant_id", "tenant-a")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("success returns the order with frozen metadata", func(t *testing.T) {
		projectID := uuid.New().String()
		svc := &fakeOrderService{
			createFn: func(ctx context.Context, tenantID string, req order.CreateOrderRequest) (order.OrderResponse, error) {
				assert.Equal(t, projectID, req.ProjectID)
				return order.OrderResponse{
					ID:        uuid.New().String(),
					ProjectID: projectID,
					DraftName: req.DraftName,
					Status:    "draft",
					Metadata:  order.MetadataResponse{ProjectName: "Lindenhof", ProjectNumber: "P-2026-014"},
				}, nil
			},
		}

		h := order.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"project_id":"` + projectID + `","draft_name":"Bodenplatte"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("tenant_id", "tenant-a")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Lindenhof")
	})
}

func TestOrderHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("already submitted maps to conflict", func(t *testing.T) {
		svc := &fakeOrderService{
			submitFn: func(ctx context.Context, tenantID, id string) (order.OrderResponse, error) {
				return order.OrderResponse{}, ordererrors.ErrOrderAlreadySubmitted
			},
		}

		h := order.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/orders/x/submit", nil)
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		c.Set("tenant_id", "tenant-a")

		h.Submit(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestOrderHandler_AddItem(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("duplicate position maps to conflict", func(t *testing.T) {
		orderID := uuid.New().String()
		svc := &fakeOrderService{
			addItemFn: func(ctx context.Context, tenantID, oid string, req order.AddItemRequest) (order.OrderItemResponse, error) {
				assert.Equal(t, orderID, oid)
				return order.OrderItemResponse{}, ordererrors.ErrDuplicateItemPosition
			},
		}

		h := order.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"position":1,"article_number":"A-100","quantity":4}`
		c.Request = httptest.NewRequest(http.MethodPost, "/orders/"+orderID+"/items", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: orderID}}
		c.Set("tenant_id", "tenant-a")

		h.AddItem(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("zero quantity rejected by binding", func(t *testing.T) {
		svc := &fakeOrderService{
			addItemFn: func(ctx context.Context, tenantID, oid string, req order.AddItemRequest) (order.OrderItemResponse, error) {
				t.Fatal("service must not be called on binding failure")
				return order.OrderItemResponse{}, nil
			},
		}

		h := order.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/orders/x/items", strings.NewReader(`{"position":1,"article_number":"A-100","quantity":0}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		c.Set("tenant_id", "tenant-a")

		h.AddItem(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_RequestPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("accepted with queued status", func(t *testing.T) {
		orderID := uuid.New().String()
		svc := &fakeOrderService{
			requestPDFFn: func(ctx context.Context, tenantID, id string) error {
				assert.Equal(t, orderID, id)
				return nil
			},
		}

		h := order.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/orders/"+orderID+"/pdf", nil)
		c.Params = gin.Params{{Key: "id", Value: orderID}}
		c.Set("tenant_id", "tenant-a")

		h.RequestPDF(c)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"queued"`)
	})

	t.Run("missing order surfaces not found", func(t *testing.T) {
		svc := &fakeOrderService{
			requestPDFFn: func(ctx context.Context, tenantID, id string) error {
				return ordererrors.ErrOrderNotFound
			},
		}

		h := order.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/orders/x/pdf", nil)
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		c.Set("tenant_id", "tenant-a")

		h.RequestPDF(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
