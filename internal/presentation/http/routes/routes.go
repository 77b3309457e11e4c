package routes

import (
	"time"

	"github.com/fadhilmp/usahaku-api/internal/config"
	domainRepo "github.com/fadhilmp/usahaku-api/internal/domain/repository"
	"github.com/fadhilmp/usahaku-api/internal/presentation/http/handler"
	"github.com/fadhilmp/usahaku-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product     *handler.ProductHandler
	Catalog     *handler.CatalogHandler
	Transaction *handler.TransactionHandler
	Production  *handler.ProductionHandler
	Dashboard   *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.Actor())

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/restock", h.Product.Restock)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", h.Catalog.CreateCategory)
		categories.PUT("/:id", h.Catalog.UpdateCategory)
		categories.DELETE("/:id", h.Catalog.DeleteCategory)
	}

	units := rg.Group("/units")
	{
		units.GET("", h.Catalog.ListUnits)
		units.POST("", h.Catalog.CreateUnit)
		units.DELETE("/:id", h.Catalog.DeleteUnit)
	}

	transactions := rg.Group("/transactions")
	{
		// A replayed submission must not decrement stock twice, so creation
		// demands an idempotency key.
		transactions.POST("", idempotency, h.Transaction.Create)
		transactions.GET("", h.Transaction.List)
		transactions.GET("/due", h.Transaction.ListDue)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.POST("/:id/pay", h.Transaction.PayRemaining)
		transactions.DELETE("/:id", h.Transaction.Delete)
	}

	productions := rg.Group("/productions")
	{
		productions.POST("", idempotency, h.Production.Create)
		productions.GET("", h.Production.List)
		productions.GET("/:id", h.Production.Get)
	}

	rg.GET("/dashboard/summary", h.Dashboard.Summary)
}
