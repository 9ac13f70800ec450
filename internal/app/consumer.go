package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/viorizz/swom/internal/events"
	"github.com/viorizz/swom/internal/messaging/kafka/consumer"
	"github.com/viorizz/swom/internal/order"
	"github.com/viorizz/swom/internal/pdf"
	"github.com/viorizz/swom/internal/project"
	"github.com/viorizz/swom/internal/shared/connection"
	"github.com/viorizz/swom/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	orderRepo := order.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	orderService := order.NewService(orderRepo, projectRepo, counterRepo, logger)
	pdfService := pdf.NewService(orderService, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.OrderPDFRequestedTopic,
		GroupID:        "bauorder-order-pdf",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeOrderPDFRequested(ctx, reader, pdfService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
