package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmuteti/restopos-api/internal/application/service"
	"github.com/kmuteti/restopos-api/internal/cache"
	"github.com/kmuteti/restopos-api/internal/config"
	"github.com/kmuteti/restopos-api/internal/infrastructure/database"
	"github.com/kmuteti/restopos-api/internal/infrastructure/repository"
	"github.com/kmuteti/restopos-api/internal/presentation/http/handler"
	"github.com/kmuteti/restopos-api/internal/presentation/http/routes"
	"github.com/kmuteti/restopos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

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

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	staffRepo := repository.NewStaffRepository(db)
	productRepo := repository.NewProductRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	saleRepo := repository.NewSaleRepository(db, cfg.POS.OrderPrefix, cfg.POS.ReceiptPrefix)
	heldOrderRepo := repository.NewHeldOrderRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Kitchen board cache: redis when enabled, otherwise a noop that always
	// falls through to the database
	var boardCache cache.BoardCache = cache.NoopBoardCache{}
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisBoardCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Printf("Warning: redis unavailable, kitchen board cache disabled: %v", err)
		} else {
			boardCache = redisCache
		}
		cancel()
	}

	// Initialize services
	authService := service.NewAuthService(staffRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	shiftService := service.NewShiftService(shiftRepo, saleRepo)
	saleService := service.NewSaleService(saleRepo, shiftRepo, productRepo, boardCache)
	heldOrderService := service.NewHeldOrderService(heldOrderRepo)
	kitchenService := service.NewKitchenService(saleRepo, boardCache, cfg.POS.BoardCacheTTL)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Sale:      handler.NewSaleHandler(saleService),
		HeldOrder: handler.NewHeldOrderHandler(heldOrderService),
		Kitchen:   handler.NewKitchenHandler(kitchenService),
		Shift:     handler.NewShiftHandler(shiftService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
