package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/viorizz/swom/internal/events"
	ordererrors "github.com/viorizz/swom/internal/order/errors"
	"github.com/viorizz/swom/internal/pdf"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeOrderPDFRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	pdfService pdf.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.order_pdf")
	log.Info("order pdf consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("order pdf consumer stopped")
				return
			}
			log.Error("fetch order pdf message failed", zap.Error(err))
			continue
		}

		var event events.OrderPDFRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode order pdf event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		doc, err := pdfService.Generate(ctx, event.TenantID, event.OrderID)
		if err != nil {
			// The order was deleted between the request and this point;
			// there is nothing to generate, so the message is spent.
			if errors.Is(err, ordererrors.ErrOrderNotFound) {
				log.Warn("order gone before generation, skipping",
					zap.String("order_id", event.OrderID),
					zap.String("tenant_id", event.TenantID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("generate order document failed",
				zap.String("order_id", event.OrderID),
				zap.String("tenant_id", event.TenantID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit order pdf message failed", zap.Error(err))
			continue
		}

		log.Info("order document generated",
			zap.String("order_id", event.OrderID),
			zap.String("tenant_id", event.TenantID),
			zap.Int("items", len(doc.Items)),
		)
	}
}
