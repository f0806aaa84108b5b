package v1

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"boxfactory/internal/config"
	"boxfactory/internal/domain/catalogs/branch"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/domain/catalogs/product"
	"boxfactory/internal/domain/documents/invoice"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
	"boxfactory/internal/domain/documents/shipment"
	"boxfactory/internal/domain/pagination"
	"boxfactory/internal/infrastructure/http/v1/dto"
	"boxfactory/internal/infrastructure/http/v1/handlers"
	"boxfactory/internal/infrastructure/http/v1/middleware"
	"boxfactory/internal/infrastructure/storage/postgres"
	"boxfactory/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Config   *config.Config
	Logger   *logger.Logger
	Services *Services
	Backend  Backend

	// Pool is nil in memory mode
	Pool *postgres.Pool

	// Redis backs the rate limiter when set
	Redis *redis.Client
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if cfg.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.NoRoute(middleware.NotFound())

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(cors.New(corsConfig(cfg.Config)))
	if cfg.Config.Server.Gzip {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	limit, err := middleware.RateLimit(middleware.RateLimitConfig{
		Window:      cfg.Config.RateLimitWindow(),
		MaxRequests: cfg.Config.RateLimit.MaxRequests,
		Redis:       cfg.Redis,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	api := router.Group("/api")
	api.Use(limit)
	registerRoutes(api, cfg)

	return router, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, middleware.HeaderTraceID},
		ExposeHeaders:    []string{middleware.HeaderRequestID, middleware.HeaderTraceID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := cfg.CORSOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowOriginFunc = func(string) bool { return true }
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func registerRoutes(api *gin.RouterGroup, cfg RouterConfig) {
	s := cfg.Services
	paging := pagination.Policy{
		DefaultLimit: cfg.Config.Paging.DefaultSize,
		MaxLimit:     cfg.Config.Paging.MaxSize,
	}

	clients := handlers.NewEntityHandler[*client.Client, dto.CreateClientRequest, dto.UpdateClientRequest](
		handlers.EntityConfig[*client.Client]{
			Service: s.Clients, EntityName: client.EntityName, Paging: paging,
			Filters: []string{"status"}, Search: true,
		})
	branches := handlers.NewEntityHandler[*branch.Branch, dto.CreateBranchRequest, dto.UpdateBranchRequest](
		handlers.EntityConfig[*branch.Branch]{
			Service: s.Branches, EntityName: branch.EntityName, Paging: paging,
			Filters: []string{"status", "clientId"}, Search: true,
		})
	materials := handlers.NewEntityHandler[*material.Material, dto.CreateMaterialRequest, dto.UpdateMaterialRequest](
		handlers.EntityConfig[*material.Material]{
			Service: s.Materials, EntityName: material.EntityName, Paging: paging,
			Filters: []string{"status"}, Search: true,
		})
	products := handlers.NewEntityHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest](
		handlers.EntityConfig[*product.Product]{
			Service: s.Products, EntityName: product.EntityName, Paging: paging,
			Filters: []string{"status"}, Search: true,
		})
	orders := handlers.NewEntityHandler[*order.Order, dto.CreateOrderRequest, dto.UpdateOrderRequest](
		handlers.EntityConfig[*order.Order]{
			Service: s.Orders, EntityName: order.EntityName, Paging: paging,
			Filters: []string{"status", "clientId", "priority"},
		})
	invoices := handlers.NewEntityHandler[*invoice.Invoice, dto.CreateInvoiceRequest, dto.UpdateInvoiceRequest](
		handlers.EntityConfig[*invoice.Invoice]{
			Service: s.Invoices, EntityName: invoice.EntityName, Paging: paging,
			Filters: []string{"status", "clientId", "orderId"},
		})
	payments := handlers.NewEntityHandler[*payment.Payment, dto.CreatePaymentRequest, dto.UpdatePaymentRequest](
		handlers.EntityConfig[*payment.Payment]{
			Service: s.Payments, EntityName: payment.EntityName, Paging: paging,
			Filters: []string{"status", "clientId", "invoiceId", "paymentMethod"},
		})
	shipments := handlers.NewEntityHandler[*shipment.Shipment, dto.CreateShipmentRequest, dto.UpdateShipmentRequest](
		handlers.EntityConfig[*shipment.Shipment]{
			Service: s.Shipments, EntityName: shipment.EntityName, Paging: paging,
			Filters: []string{"status", "clientId", "orderId"},
		})

	RegisterEntityRoutes(api.Group("/clients"), clients)
	RegisterEntityRoutes(api.Group("/branches"), branches)
	RegisterEntityRoutes(api.Group("/materials"), materials)
	RegisterEntityRoutes(api.Group("/products"), products)
	RegisterEntityRoutes(api.Group("/orders"), orders)
	RegisterEntityRoutes(api.Group("/invoices"), invoices)
	RegisterEntityRoutes(api.Group("/payments"), payments)
	RegisterEntityRoutes(api.Group("/shipments"), shipments)

	links := handlers.NewClientLinks(s.Clients, branches, orders, payments)
	api.GET("/clients/:id/branches", links.Branches)
	api.GET("/clients/:id/orders", links.Orders)
	api.GET("/clients/:id/payments", links.Payments)

	items := handlers.NewOrderItemHandler(s.Orders)
	api.GET("/orders/:id/items", items.List)
	api.POST("/orders/:id/items", items.Add)
	api.PUT("/order-items/:itemId", items.Update)
	api.DELETE("/order-items/:itemId", items.Delete)

	api.GET("/products/:id/materials", handlers.NewProductMaterials(s.Products).List)

	api.GET("/dashboard/stats", handlers.NewDashboardHandler(s.Dashboard).Stats)

	if cfg.Backend.Audit != nil {
		auditHandler := handlers.NewAuditHandler(cfg.Backend.Audit, AuditEntityTypes...)
		api.GET("/audit/:entity/:id", auditHandler.History)
	}
}
