package app

import (
	"database/sql"

	"github.com/viorizz/swom/internal/company"
	"github.com/viorizz/swom/internal/messaging/kafka"
	"github.com/viorizz/swom/internal/navigation"
	"github.com/viorizz/swom/internal/order"
	"github.com/viorizz/swom/internal/part"
	"github.com/viorizz/swom/internal/pdf"
	"github.com/viorizz/swom/internal/pendingcompany"
	"github.com/viorizz/swom/internal/project"
	"github.com/viorizz/swom/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	orderRepo := order.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	partRepo := part.NewRepository(gormDB)
	pendingRepo := pendingcompany.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)

	// --- Services ---
	companyService := company.NewService(companyRepo, rdb)
	navigationService := navigation.NewService(projectRepo, orderRepo, companyRepo, rdb)
	orderService := order.NewServiceWithOutbox(orderRepo, projectRepo, counterRepo, outboxRepo)
	partService := part.NewService(partRepo, projectRepo)
	pdfService := pdf.NewService(orderService)
	pendingService := pendingcompany.NewServiceWithOutbox(db, pendingRepo, companyRepo, outboxRepo, rdb)
	projectService := project.NewServiceWithOutbox(db, projectRepo, pendingRepo, companyRepo, outboxRepo)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService)
	navigationHandler := navigation.NewHandler(navigationService)
	orderHandler := order.NewHandler(orderService)
	partHandler := part.NewHandler(partService)
	pdfHandler := pdf.NewHandler(pdfService)
	pendingHandler := pendingcompany.NewHandler(pendingService)
	projectHandler := project.NewHandler(projectService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler)
		navigation.RegisterRoutes(api, navigationHandler)
		order.RegisterRoutes(api, orderHandler, rdb)
		part.RegisterRoutes(api, partHandler)
		pdf.RegisterRoutes(api, pdfHandler)
		pendingcompany.RegisterRoutes(api, pendingHandler)
		project.RegisterRoutes(api, projectHandler, rdb)
	}

	return nil
}
