package pdf

import (
	"context"

	"github.com/viorizz/swom/internal/order"

	"go.uber.org/zap"
)

// DocumentResponse is the assembled payload handed to the renderer. There
// is no renderer yet; the document goes back to the caller as structured
// data so the contract is exercised end to end.
type DocumentResponse struct {
	Order order.OrderResponse       `json:"order"`
	Items []order.OrderItemResponse `json:"items"`
}

//go:generate mockgen -source=pdf_service.go -destination=mock/pdf_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, tenantID, orderID string) (DocumentResponse, error)
}

type service struct {
	orderService order.Service
	logger       *zap.Logger
}

func NewService(orderService order.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("pdf.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("pdf.service")
	}
	return &service{
		orderService: orderService,
		logger:       l,
	}
}

func (s *service) Generate(
	ctx context.Context,
	tenantID, orderID string,
) (DocumentResponse, error) {
	ord, err := s.orderService.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return DocumentResponse{}, err
	}

	items, err := s.orderService.ListItems(ctx, tenantID, orderID)
	if err != nil {
		return DocumentResponse{}, err
	}

	s.logger.Info("document assembled",
		zap.String("tenant_id", tenantID),
		zap.String("order_id", orderID),
		zap.Int("items", len(items)),
	)

	return DocumentResponse{
		Order: ord,
		Items: items,
	}, nil
}
