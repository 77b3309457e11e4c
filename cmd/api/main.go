package main

import (
	"log"

	"github.com/fadhilmp/usahaku-api/internal/application/service"
	"github.com/fadhilmp/usahaku-api/internal/config"
	"github.com/fadhilmp/usahaku-api/internal/infrastructure/database"
	"github.com/fadhilmp/usahaku-api/internal/infrastructure/repository"
	"github.com/fadhilmp/usahaku-api/internal/presentation/http/handler"
	"github.com/fadhilmp/usahaku-api/internal/presentation/http/routes"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := config.NewLogger(cfg)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	inventoryService := service.NewInventoryService(productRepo, productionRepo, logger)
	transactionService := service.NewTransactionService(transactionRepo, productRepo, inventoryService, logger)
	productService := service.NewProductService(productRepo)
	catalogService := service.NewCatalogService(categoryRepo, unitRepo)
	dashboardService := service.NewDashboardService(transactionRepo, productRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:     handler.NewProductHandler(productService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Production:  handler.NewProductionHandler(inventoryService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             logger,
		IdempotencyRepo: idempotencyRepo,
	})

	logger.WithField("port", cfg.App.Port).Info("starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
