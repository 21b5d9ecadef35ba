package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/flicky/swiftora-api/internal/config"
	"github.com/flicky/swiftora-api/internal/handler"
	"github.com/flicky/swiftora-api/internal/logger"
	"github.com/flicky/swiftora-api/internal/metrics"
	"github.com/flicky/swiftora-api/internal/middleware"
	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
	"github.com/flicky/swiftora-api/internal/service"
)

// New wires repositories, services and handlers and returns the engine.
// rdb may be nil, which turns off idempotent order placement and the redis
// readiness check.
func New(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()

	// Repositories
	accountRepo := repository.NewAccountRepository(pool)
	supplierRepo := repository.NewSupplierRepository(pool)
	supermarketRepo := repository.NewSupermarketRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)
	tieUpRepo := repository.NewTieUpRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	// Services
	ids := service.NewIdentities(supplierRepo, supermarketRepo)
	authSvc := service.NewAuthService(accountRepo, supplierRepo, supermarketRepo, cfg.JWT.Secret, cfg.JWT.Expiration, log)
	profileSvc := service.NewProfileService(supplierRepo, supermarketRepo)
	productSvc := service.NewProductService(productRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, m)
	tieUpSvc := service.NewTieUpService(tieUpRepo, ids, log, m)
	catalogSvc := service.NewCatalogService(tieUpRepo, productRepo, supplierRepo, orderRepo)
	orderSvc := service.NewOrderService(orderRepo, log, m)
	dashboardSvc := service.NewDashboardService(ids, tieUpRepo, orderRepo, productRepo, inventoryRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	productH := handler.NewProductHandler(productSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	tieUpH := handler.NewTieUpHandler(tieUpSvc, ids)
	catalogH := handler.NewCatalogHandler(catalogSvc, ids)
	orderH := handler.NewOrderHandler(orderSvc, ids)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	healthH := handler.NewHealthHandler(pool, rdb)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(log))
	r.Use(m.Middleware())
	// Innermost, so access logs and metrics see the 500 from a panic.
	r.Use(logger.Recovery(log))

	r.GET("/healthz", healthH.Healthz)
	r.GET("/readyz", healthH.Readyz)
	r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))

	auth := middleware.AuthMiddleware(cfg.JWT.Secret)
	supplierOnly := middleware.RequireRole(model.RoleSupplier)
	supermarketOnly := middleware.RequireRole(model.RoleSupermarket)

	v1 := r.Group("/api/v1")
	{
		a := v1.Group("/auth")
		a.POST("/register", authH.Register)
		a.POST("/login", authH.Login)

		v1.GET("/users/me", auth, authH.Me)

		suppliers := v1.Group("/suppliers", auth, supplierOnly)
		suppliers.POST("", profileH.CreateSupplier)
		suppliers.GET("/me", profileH.MySupplier)
		suppliers.GET("/dashboard", dashboardH.Supplier)
		suppliers.PUT("/:supplierId", profileH.UpdateSupplier)

		supermarkets := v1.Group("/supermarkets", auth, supermarketOnly)
		supermarkets.POST("", profileH.CreateSupermarket)
		supermarkets.GET("/me", profileH.MySupermarket)
		supermarkets.GET("/dashboard", dashboardH.Supermarket)
		supermarkets.GET("/suppliers", catalogH.SupplierDirectory)
		supermarkets.PUT("/:supermarketId", profileH.UpdateSupermarket)
		supermarkets.DELETE("/:supermarketId", profileH.DeleteSupermarket)

		products := v1.Group("/products", auth, supplierOnly)
		products.POST("", productH.Create)
		products.GET("", productH.List)
		products.GET("/sku/:sku", productH.GetBySKU)
		products.PUT("/sku/:sku", productH.UpdateBySKU)
		products.DELETE("/sku/:sku", productH.DeleteBySKU)
		products.GET("/barcode/:barcode", productH.GetByBarcode)

		inventory := v1.Group("/inventory", auth, supplierOnly)
		inventory.POST("", inventoryH.Upsert)
		inventory.GET("", inventoryH.List)
		inventory.PUT("/:productId", inventoryH.Modify)
		inventory.DELETE("/:productId", inventoryH.Remove)

		tieUps := v1.Group("/tieup", auth)
		tieUps.POST("/request", supermarketOnly, tieUpH.Request)
		tieUps.PUT("/accept/:supermarketId/:supplierId", supplierOnly, tieUpH.Accept)
		tieUps.GET("/status", supermarketOnly, tieUpH.Status)
		tieUps.GET("/accepted/:supermarketId", supermarketOnly, tieUpH.Accepted)
		tieUps.GET("/for-supplier", supplierOnly, tieUpH.ForSupplier)

		orders := v1.Group("/orders", auth)
		orders.GET("", orderH.List)
		orders.POST("/place", supermarketOnly, middleware.Idempotency(rdb, cfg.Idempotency.TTL, log), orderH.Place)
		orders.PUT("/update/:orderId", orderH.UpdateStatus)
		orders.GET("/by-supermarket/:supermarketAccountId", supermarketOnly, catalogH.EligibleProducts)
		orders.GET("/supermarket/:supermarketId", supermarketOnly, catalogH.OrdersWithDetails)
	}

	return r
}
