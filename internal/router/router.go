package router

import (
	"time"

	"github.com/Jaysins/inventory-mgt-backend/internal/config"
	"github.com/Jaysins/inventory-mgt-backend/internal/handler"
	"github.com/Jaysins/inventory-mgt-backend/internal/infra"
	"github.com/Jaysins/inventory-mgt-backend/internal/middleware"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"
	"github.com/Jaysins/inventory-mgt-backend/internal/service"
	"github.com/Jaysins/inventory-mgt-backend/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine plus the
// async pieces main starts separately: the worker pool handlers and the
// reorder service driven by the cron.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, worker.Handlers, service.ReorderService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	stockRepo := repository.NewStockRepository(db)
	orderRepo := repository.NewPurchaseOrderRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	txRunner := service.NewTxRunner(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, supplierRepo, stockRepo)
	warehouseSvc := service.NewWarehouseService(warehouseRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	stockSvc := service.NewStockService(stockRepo, productRepo, warehouseRepo, txRunner, dispatcher)
	orderSvc := service.NewPurchaseOrderService(orderRepo, productRepo, supplierRepo, warehouseRepo,
		stockRepo, txRunner, dispatcher, dispatcher, cfg.DocumentStorageDir)
	reorderSvc := service.NewReorderService(stockRepo, orderRepo, orderSvc)
	auditSvc := service.NewAuditService(auditRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	warehousesH := handler.NewWarehousesHandler(warehouseSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	stockH := handler.NewStockHandler(stockSvc)
	ordersH := handler.NewPurchaseOrdersHandler(orderSvc)
	reorderH := handler.NewReorderHandler(reorderSvc)
	auditH := handler.NewAuditHandler(auditSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole("operator", "manager", "admin")
	managerUp := middleware.RequireRole("manager", "admin")
	adminOnly := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		// Stock ledger — operators run day-to-day mutations
		stock := v1.Group("/stock", anyRole)
		{
			stock.GET("", stockH.List)
			stock.POST("/add", stockH.Add)
			stock.POST("/remove", stockH.Remove)
			stock.POST("/transfer", stockH.Transfer)
		}

		// Products — all roles read, manager and up write
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.Get)
		products := v1.Group("/products", managerUp)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
			products.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		// Warehouses — all roles read, manager and up write
		v1.GET("/warehouses", anyRole, warehousesH.List)
		v1.GET("/warehouses/:id", anyRole, warehousesH.Get)
		v1.GET("/warehouses/:id/capacity", anyRole, warehousesH.Capacity)
		warehouses := v1.Group("/warehouses", managerUp)
		{
			warehouses.POST("", warehousesH.Create)
			warehouses.PUT("/:id", warehousesH.Update)
			warehouses.DELETE("/:id", warehousesH.Deactivate)
			warehouses.PATCH("/:id/reactivate", warehousesH.Reactivate)
		}

		// Suppliers — manager and up
		suppliers := v1.Group("/suppliers", managerUp)
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Deactivate)
		}

		// Purchase orders — all roles read and receive, manager and up manage
		v1.GET("/purchase-orders", anyRole, ordersH.List)
		v1.GET("/purchase-orders/:id", anyRole, ordersH.Get)
		v1.GET("/purchase-orders/:id/document", anyRole, ordersH.Document)
		v1.POST("/purchase-orders/:id/receive", anyRole, ordersH.Receive)
		orders := v1.Group("/purchase-orders", managerUp)
		{
			orders.POST("", ordersH.Create)
			orders.PUT("/:id", ordersH.Update)
			orders.POST("/:id/cancel", ordersH.Cancel)
		}

		// Reorder scan — manager and up
		v1.POST("/reorder/scan", managerUp, reorderH.Scan)

		// Audit trail — manager and up
		v1.GET("/audit", managerUp, auditH.List)

		// Users — admin only
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := worker.Handlers{
		Audit: worker.NewAuditWorker(auditRepo, rdb),
		Email: worker.NewEmailWorker(orderRepo, mailer, rdb, cfg.DocumentStorageDir),
	}
	return r, handlers, reorderSvc
}
