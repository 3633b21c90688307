package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmuteti/restopos-api/internal/config"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	domainRepo "github.com/kmuteti/restopos-api/internal/domain/repository"
	"github.com/kmuteti/restopos-api/internal/presentation/http/handler"
	"github.com/kmuteti/restopos-api/internal/presentation/http/middleware"
	"github.com/kmuteti/restopos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Sale      *handler.SaleHandler
	HeldOrder *handler.HeldOrderHandler
	Kitchen   *handler.KitchenHandler
	Shift     *handler.ShiftHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
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
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-staff rate limiter
		rateLimiter := middleware.NewStaffRateLimiter(middleware.RateLimiterConfig{
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

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/register", middleware.RequireRole(entity.RoleManager), h.Auth.Register)

	registerShiftRoutes(protected, h)
	registerSaleRoutes(protected, h, deps)
	registerHeldOrderRoutes(protected, h)
	registerKitchenRoutes(protected, h)
	registerProductRoutes(protected, h)
}

func registerShiftRoutes(protected *gin.RouterGroup, h *Handlers) {
	shifts := protected.Group("/shifts")
	shifts.Use(middleware.RequireRole(entity.RoleCashier, entity.RoleManager))
	{
		shifts.POST("/open", h.Shift.Open)
		shifts.GET("/current", h.Shift.Current)
		shifts.POST("/current/close", h.Shift.Close)
		shifts.GET("", h.Shift.List)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequireRole(entity.RoleCashier, entity.RoleManager))
	{
		// Sale commit uses idempotency middleware so a retried request
		// replays the stored response instead of selling twice
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Create)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.GET("/:id/receipt", h.Sale.Receipt)
	}

	// Reprint lookup by the number on the printed receipt
	receipts := protected.Group("/receipts")
	receipts.Use(middleware.RequireRole(entity.RoleCashier, entity.RoleManager))
	{
		receipts.GET("/:receiptNo", h.Sale.ReceiptByNumber)
	}
}

func registerHeldOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	heldOrders := protected.Group("/held-orders")
	heldOrders.Use(middleware.RequireRole(entity.RoleCashier, entity.RoleManager))
	{
		heldOrders.POST("", h.HeldOrder.Hold)
		heldOrders.GET("", h.HeldOrder.List)
		heldOrders.POST("/:id/resume", h.HeldOrder.Resume)
		heldOrders.DELETE("/:id", h.HeldOrder.Delete)
	}
}

func registerKitchenRoutes(protected *gin.RouterGroup, h *Handlers) {
	kitchen := protected.Group("/kitchen")
	kitchen.Use(middleware.RequireRole(entity.RoleKitchen, entity.RoleCashier, entity.RoleManager))
	{
		kitchen.GET("/tickets", h.Kitchen.Board)
		kitchen.PUT("/sales/:id/status", h.Kitchen.SetStatus)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)

		// Catalog mutation is a manager concern
		products.POST("", middleware.RequireRole(entity.RoleManager), h.Product.Create)
		products.PUT("/:id", middleware.RequireRole(entity.RoleManager), h.Product.Update)
		products.POST("/restock", middleware.RequireRole(entity.RoleManager), h.Product.Restock)
	}
}
