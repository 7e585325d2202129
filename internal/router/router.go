package router

import (
	"time"

	"shopledger/internal/config"
	"shopledger/internal/handler"
	"shopledger/internal/middleware"
	"shopledger/internal/repository"
	"shopledger/internal/service"
	"shopledger/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	vendorSvc := service.NewVendorService(vendorRepo, productRepo)
	productSvc := service.NewProductService(productRepo, vendorRepo, saleRepo, rdb)
	saleSvc := service.NewSaleService(saleRepo, productRepo, rdb, dispatcher, cfg.LowStockThreshold)
	reportSvc := service.NewReportService(reportRepo, rdb, cfg.ReportCacheTTL, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	vendorsH := handler.NewVendorsHandler(vendorSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole("admin")
	anyRole := middleware.RequireRole("admin", "salesperson")

	vendors := r.Group("/vendors", jwtMW)
	{
		vendors.GET("", anyRole, vendorsH.List)
		vendors.POST("", adminOnly, vendorsH.Create)
		vendors.DELETE("/:id", adminOnly, vendorsH.Delete)
	}

	products := r.Group("/products", jwtMW)
	{
		products.GET("", anyRole, productsH.List)
		products.POST("", adminOnly, productsH.Create)
		products.PUT("/:id", adminOnly, productsH.Update)
		products.DELETE("/:id", adminOnly, productsH.Delete)
	}

	sales := r.Group("/sales", jwtMW)
	{
		sales.GET("", anyRole, salesH.List)
		sales.POST("", anyRole, salesH.Record)
		sales.DELETE("/:id", anyRole, salesH.Delete)
	}

	reports := r.Group("/reports", jwtMW, adminOnly)
	{
		reports.GET("", reportsH.Get)
		reports.GET("/export", reportsH.Export)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
