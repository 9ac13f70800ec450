package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viorizz/swom/internal/events"
	"github.com/viorizz/swom/internal/messaging/kafka"
	ordererrors "github.com/viorizz/swom/internal/order/errors"
	"github.com/viorizz/swom/internal/project"
	projecterrors "github.com/viorizz/swom/internal/project/errors"
	"github.com/viorizz/swom/internal/shared/contextutil"
	"github.com/viorizz/swom/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	counterOrderNumber = "order_number"
	counterDraftNumber = "draft_number"
)

//go:generate mockgen -source=order_service.go -destination=mock/order_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateOrderRequest) (OrderResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]OrderResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (OrderResponse, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]OrderResponse, error)
	Submit(ctx context.Context, tenantID, id string) (OrderResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
	AddItem(ctx context.Context, tenantID, orderID string, req AddItemRequest) (OrderItemResponse, error)
	ListItems(ctx context.Context, tenantID, orderID string) ([]OrderItemResponse, error)
	RequestPDF(ctx context.Context, tenantID, id string) error
}

type service struct {
	repo        Repository
	projectRepo project.Repository
	counterRepo counter.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	projectRepo project.Repository,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(repo, projectRepo, counterRepo, nil, logger...)
}

func NewServiceWithOutbox(
	repo Repository,
	projectRepo project.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("order.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("order.service")
	}
	return &service{
		repo:        repo,
		projectRepo: projectRepo,
		counterRepo: counterRepo,
		outbox:      outboxRepo,
		logger:      l,
	}
}

// Create snapshots the parent project's name and number into the order so
// the document stays faithful to the project as it stood at draft time.
// Omitted order and draft numbers are allocated from the tenant counter.
func (s *service) Create(
	ctx context.Context,
	tenantID string,
	req CreateOrderRequest,
) (OrderResponse, error) {
	proj, err := s.projectRepo.FindByIDAndTenant(ctx, tenantID, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, projecterrors.ErrProjectNotFound
		}
		s.logger.Error("project lookup failed",
			zap.String("project_id", req.ProjectID),
			zap.Error(err),
		)
		return OrderResponse{}, err
	}

	ord := &Order{
		ID:             uuid.New(),
		ProjectID:      proj.ID,
		DraftName:      req.DraftName,
		ManufacturerID: req.ManufacturerID,
		TemplateName:   req.TemplateName,
		Metadata: Metadata{
			ProjectName:      proj.Name,
			ProjectNumber:    proj.Number,
			DesignerInitials: req.DesignerInitials,
			EngineerInitials: req.EngineerInitials,
		},
		Status:   StatusDraft,
		TenantID: tenantID,
	}

	if req.OrderNumber != nil && *req.OrderNumber != "" {
		ord.OrderNumber = *req.OrderNumber
	} else {
		next, err := s.counterRepo.GetNextValue(ctx, tenantID, counterOrderNumber)
		if err != nil {
			s.logger.Error("order number allocation failed", zap.Error(err))
			return OrderResponse{}, err
		}
		ord.OrderNumber = fmt.Sprintf("ORD-%06d", next)
	}

	if req.DraftNumber != nil && *req.DraftNumber != "" {
		ord.DraftNumber = *req.DraftNumber
	} else {
		next, err := s.counterRepo.GetNextValue(ctx, tenantID, counterDraftNumber)
		if err != nil {
			s.logger.Error("draft number allocation failed", zap.Error(err))
			return OrderResponse{}, err
		}
		ord.DraftNumber = fmt.Sprintf("DRF-%06d", next)
	}

	if err := s.repo.Create(ctx, ord); err != nil {
		s.logger.Error("create order persist failed", zap.Error(err))
		return OrderResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create order success",
		zap.String("order_id", ord.ID.String()),
		zap.String("project_id", proj.ID.String()),
		zap.String("order_number", ord.OrderNumber),
	)

	return mapToResponse(*ord), nil
}

func (s *service) GetAll(
	ctx context.Context,
	tenantID string,
) ([]OrderResponse, error) {
	orders, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(orders), nil
}

func (s *service) GetByID(
	ctx context.Context,
	tenantID, id string,
) (OrderResponse, error) {
	ord, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return OrderResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*ord), nil
}

func (s *service) ListByProject(
	ctx context.Context,
	tenantID, projectID string,
) ([]OrderResponse, error) {
	orders, err := s.repo.FindAllByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(orders), nil
}

// Submit moves a draft to submitted. The transition is one-way; metadata
// and numbers are frozen either way.
func (s *service) Submit(
	ctx context.Context,
	tenantID, id string,
) (OrderResponse, error) {
	ord, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return OrderResponse{}, mapRepositoryError(err)
	}

	if ord.Status == StatusSubmitted {
		return OrderResponse{}, ordererrors.ErrOrderAlreadySubmitted
	}

	ord.Status = StatusSubmitted
	if err := s.repo.Update(ctx, ord); err != nil {
		return OrderResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("order submitted",
		zap.String("tenant_id", tenantID),
		zap.String("order_id", id),
	)

	return mapToResponse(*ord), nil
}

func (s *service) Delete(
	ctx context.Context,
	tenantID, id string,
) error {
	if _, err := s.repo.FindByIDAndTenant(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}

	return nil
}

func (s *service) AddItem(
	ctx context.Context,
	tenantID, orderID string,
	req AddItemRequest,
) (OrderItemResponse, error) {
	ord, err := s.repo.FindByIDAndTenant(ctx, tenantID, orderID)
	if err != nil {
		return OrderItemResponse{}, mapRepositoryError(err)
	}

	item := &OrderItem{
		ID:            uuid.New(),
		OrderID:       ord.ID,
		Position:      req.Position,
		ArticleNumber: req.ArticleNumber,
		Description:   req.Description,
		Quantity:      req.Quantity,
		Dimensions: Dimensions{
			Diameter: req.Diameter,
			Length:   req.Length,
			Width:    req.Width,
			Height:   req.Height,
		},
		ManufacturerData: req.ManufacturerData,
		TenantID:         tenantID,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		s.logger.Error("add order item persist failed",
			zap.String("order_id", orderID),
			zap.Int("position", req.Position),
			zap.Error(err),
		)
		return OrderItemResponse{}, mapRepositoryError(err)
	}

	return mapItemToResponse(*item), nil
}

func (s *service) ListItems(
	ctx context.Context,
	tenantID, orderID string,
) ([]OrderItemResponse, error) {
	if _, err := s.repo.FindByIDAndTenant(ctx, tenantID, orderID); err != nil {
		return nil, mapRepositoryError(err)
	}

	items, err := s.repo.FindItemsByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]OrderItemResponse, len(items))
	for i, item := range items {
		res[i] = mapItemToResponse(item)
	}
	return res, nil
}

// RequestPDF enqueues generation through the outbox so the request survives
// a crash between the HTTP response and the broker publish.
func (s *service) RequestPDF(
	ctx context.Context,
	tenantID, id string,
) error {
	ord, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if s.outbox == nil {
		s.logger.Warn("pdf request dropped, outbox not configured",
			zap.String("order_id", id),
		)
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.OrderPDFRequestedEvent{
		EventType:  "order_pdf_requested",
		RequestID:  rid,
		OrderID:    ord.ID.String(),
		TenantID:   tenantID,
		OccurredAt: time.Now().UTC(),
	}

	outboxEvent, err := kafka.NewEvent(ctx, "order", ord.ID.String(), event.EventType, events.OrderPDFRequestedTopic, event)
	if err != nil {
		return err
	}

	if err := s.outbox.Create(ctx, outboxEvent); err != nil {
		s.logger.Error("pdf request enqueue failed",
			zap.String("order_id", id),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("pdf generation requested",
		zap.String("tenant_id", tenantID),
		zap.String("order_id", id),
	)

	return nil
}

func mapToResponse(ord Order) OrderResponse {
	return OrderResponse{
		ID:             ord.ID.String(),
		ProjectID:      ord.ProjectID.String(),
		DraftName:      ord.DraftName,
		DraftNumber:    ord.DraftNumber,
		OrderNumber:    ord.OrderNumber,
		ManufacturerID: ord.ManufacturerID,
		TemplateName:   ord.TemplateName,
		Metadata: MetadataResponse{
			ProjectName:      ord.Metadata.ProjectName,
			ProjectNumber:    ord.Metadata.ProjectNumber,
			DesignerInitials: ord.Metadata.DesignerInitials,
			EngineerInitials: ord.Metadata.EngineerInitials,
		},
		Status: string(ord.Status),
	}
}

func mapToListResponse(orders []Order) []OrderResponse {
	res := make([]OrderResponse, len(orders))
	for i, ord := range orders {
		res[i] = mapToResponse(ord)
	}
	return res
}

func mapItemToResponse(item OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:               item.ID.String(),
		OrderID:          item.OrderID.String(),
		Position:         item.Position,
		ArticleNumber:    item.ArticleNumber,
		Description:      item.Description,
		Quantity:         item.Quantity,
		Diameter:         item.Dimensions.Diameter,
		Length:           item.Dimensions.Length,
		Width:            item.Dimensions.Width,
		Height:           item.Dimensions.Height,
		ManufacturerData: item.ManufacturerData,
	}
}
