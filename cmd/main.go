package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rjnat/cursorpos-admin/internal/handler"
	"github.com/rjnat/cursorpos-admin/internal/middleware"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"github.com/rjnat/cursorpos-admin/internal/repository"
	"github.com/rjnat/cursorpos-admin/internal/service"
	"github.com/rjnat/cursorpos-admin/pkg/config"
	"github.com/rjnat/cursorpos-admin/pkg/database"
	"github.com/rjnat/cursorpos-admin/pkg/jwtutil"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/rjnat/cursorpos-admin/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("admin-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting admin service...", cfg.LogFields()...)

	// Initialize database
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(
		&model.Tenant{},
		&model.SubscriptionPlan{},
		&model.Branch{},
		&model.Store{},
		&model.Customer{},
		&model.LoyaltyTier{},
		&model.LoyaltyTransaction{},
		&model.Settings{},
		&model.StorePriceOverride{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})

	// Repositories
	txManager := repository.NewTxManager(db)
	tenantRepo := repository.NewTenantRepository(db)
	planRepo := repository.NewSubscriptionPlanRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	tierRepo := repository.NewLoyaltyTierRepository(db)
	ledgerRepo := repository.NewLoyaltyTransactionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	overrideRepo := repository.NewStorePriceOverrideRepository(db)

	// Services
	tenantService := service.NewTenantService(tenantRepo)
	planService := service.NewSubscriptionPlanService(planRepo)
	branchService := service.NewBranchService(branchRepo)
	storeService := service.NewStoreService(storeRepo)
	customerService := service.NewCustomerService(customerRepo)
	loyaltyService := service.NewLoyaltyService(tierRepo, ledgerRepo, customerRepo, txManager)
	settingsService := service.NewSettingsService(settingsRepo)
	overrideService := service.NewPriceOverrideService(overrideRepo, storeRepo)

	// Handlers
	healthHandler := handler.NewHealthHandler(db, cfg.ServiceName)
	tenantHandler := handler.NewTenantHandler(tenantService)
	planHandler := handler.NewSubscriptionPlanHandler(planService)
	branchHandler := handler.NewBranchHandler(branchService)
	storeHandler := handler.NewStoreHandler(storeService)
	customerHandler := handler.NewCustomerHandler(customerService)
	defaultRate, err := decimal.NewFromString(cfg.Loyalty.DefaultPointsPerCurrency)
	if err != nil {
		log.Fatal("Invalid LOYALTY_POINTS_PER_CURRENCY", zap.Error(err))
	}
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltyService, tenantService, defaultRate)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	overrideHandler := handler.NewPriceOverrideHandler(overrideService)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware, order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes
	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", prometheus.HandlerFunc())

	// Platform-level routes: authenticated, no tenant required
	platform := e.Group("/api/v1", middleware.AuthMiddleware(jwtUtil))

	tenants := platform.Group("/tenants")
	tenants.POST("", tenantHandler.Create)
	tenants.GET("", tenantHandler.List)
	tenants.GET("/:id", tenantHandler.Get)
	tenants.GET("/code/:code", tenantHandler.GetByCode)
	tenants.PUT("/:id", tenantHandler.Update)
	tenants.DELETE("/:id", tenantHandler.Delete)
	tenants.POST("/:id/activate", tenantHandler.Activate)
	tenants.POST("/:id/deactivate", tenantHandler.Deactivate)

	plans := platform.Group("/plans")
	plans.POST("", planHandler.Create)
	plans.GET("", planHandler.List)
	plans.GET("/active", planHandler.ListActive)
	plans.GET("/:id", planHandler.Get)
	plans.GET("/code/:code", planHandler.GetByCode)
	plans.GET("/:id/can-change", planHandler.CheckChange)
	plans.PUT("/:id", planHandler.Update)
	plans.DELETE("/:id", planHandler.Delete)
	plans.POST("/:id/activate", planHandler.Activate)
	plans.POST("/:id/deactivate", planHandler.Deactivate)

	// Tenant-scoped routes: authenticated and bound to the token's tenant
	api := e.Group("/api/v1", middleware.AuthMiddleware(jwtUtil), middleware.RequireTenant)

	branches := api.Group("/branches")
	branches.POST("", branchHandler.Create)
	branches.GET("", branchHandler.List)
	branches.GET("/:id", branchHandler.Get)
	branches.GET("/code/:code", branchHandler.GetByCode)
	branches.PUT("/:id", branchHandler.Update)
	branches.DELETE("/:id", branchHandler.Delete)
	branches.POST("/:id/activate", branchHandler.Activate)
	branches.POST("/:id/deactivate", branchHandler.Deactivate)

	stores := api.Group("/stores")
	stores.POST("", storeHandler.Create)
	stores.GET("", storeHandler.List)
	stores.GET("/count", storeHandler.Count)
	stores.GET("/:id", storeHandler.Get)
	stores.GET("/code/:code", storeHandler.GetByCode)
	stores.PUT("/:id", storeHandler.Update)
	stores.DELETE("/:id", storeHandler.Delete)
	stores.POST("/:id/activate", storeHandler.Activate)
	stores.POST("/:id/deactivate", storeHandler.Deactivate)

	customers := api.Group("/customers")
	customers.POST("", customerHandler.Create)
	customers.GET("", customerHandler.List)
	customers.GET("/search", customerHandler.Search)
	customers.GET("/:id", customerHandler.Get)
	customers.GET("/code/:code", customerHandler.GetByCode)
	customers.GET("/tier/:tierId", customerHandler.ListByTier)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)
	customers.POST("/:id/activate", customerHandler.Activate)
	customers.POST("/:id/deactivate", customerHandler.Deactivate)

	loyalty := api.Group("/loyalty")
	loyalty.POST("/tiers", loyaltyHandler.CreateTier)
	loyalty.GET("/tiers", loyaltyHandler.ListTiers)
	loyalty.GET("/tiers/:id", loyaltyHandler.GetTier)
	loyalty.GET("/tiers/code/:code", loyaltyHandler.GetTierByCode)
	loyalty.PUT("/tiers/:id", loyaltyHandler.UpdateTier)
	loyalty.DELETE("/tiers/:id", loyaltyHandler.DeleteTier)
	loyalty.POST("/transactions", loyaltyHandler.RecordTransaction)
	loyalty.GET("/transactions", loyaltyHandler.ListTransactions)
	loyalty.GET("/transactions/:id", loyaltyHandler.GetTransaction)
	loyalty.GET("/customers/:customerId/transactions", loyaltyHandler.ListCustomerTransactions)
	loyalty.POST("/points/calculate", loyaltyHandler.CalculatePoints)

	settings := api.Group("/settings")
	settings.POST("", settingsHandler.Create)
	settings.GET("", settingsHandler.List)
	settings.PUT("", settingsHandler.Upsert)
	settings.GET("/:id", settingsHandler.Get)
	settings.GET("/key/:key", settingsHandler.GetByKey)
	settings.GET("/category/:category", settingsHandler.ListByCategory)
	settings.DELETE("/:id", settingsHandler.Delete)

	overrides := api.Group("/price-overrides")
	overrides.POST("", overrideHandler.Create)
	overrides.GET("/:id", overrideHandler.Get)
	overrides.GET("/store/:storeId", overrideHandler.ListByStore)
	overrides.GET("/product/:productId", overrideHandler.ListByProduct)
	overrides.GET("/store/:storeId/product/:productId/active", overrideHandler.GetActive)
	overrides.PUT("/:id", overrideHandler.Update)
	overrides.DELETE("/:id", overrideHandler.Delete)
	overrides.POST("/:id/activate", overrideHandler.Activate)
	overrides.POST("/:id/deactivate", overrideHandler.Deactivate)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
