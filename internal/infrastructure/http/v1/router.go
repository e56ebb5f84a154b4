// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storechain/internal/domain/auth"
	"storechain/internal/domain/cart"
	"storechain/internal/domain/customer"
	"storechain/internal/domain/employee"
	"storechain/internal/domain/inventory"
	"storechain/internal/domain/receiving"
	"storechain/internal/domain/store"
	"storechain/internal/infrastructure/http/v1/handlers"
	"storechain/internal/infrastructure/http/v1/middleware"
	"storechain/internal/infrastructure/storage/postgres"
	"storechain/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	AuthService      *auth.Service
	StoreService     *store.Service
	CustomerService  *customer.Service
	EmployeeService  *employee.Service
	InventoryService *inventory.Service
	ReceivingService *receiving.Service
	CartService      *cart.Service

	// AllowedOrigins for CORS; empty allows all.
	AllowedOrigins []string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.CustomerService)
	storeHandler := handlers.NewStoreHandler(cfg.StoreService)
	customerHandler := handlers.NewCustomerHandler(cfg.CustomerService)
	employeeHandler := handlers.NewEmployeeHandler(cfg.EmployeeService, cfg.AuthService)
	inventoryOrderHandler := handlers.NewInventoryOrderHandler(cfg.ReceivingService)
	inventoryProductHandler := handlers.NewInventoryProductHandler(cfg.InventoryService)
	cartOrderHandler := handlers.NewCartOrderHandler(cfg.CartService)
	cartProductHandler := handlers.NewCartProductHandler(cfg.CartService)

	api := router.Group("/api")
	{
		// Public: account creation and login
		api.POST("/signup", authHandler.SignupCustomer)
		api.GET("/login", authHandler.LoginCustomer)
		api.GET("/employee/login", authHandler.LoginEmployee)

		// Everything else requires a bearer token
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		// Store reads
		protected.GET("/store", storeHandler.List)
		protected.GET("/store/:storeID", storeHandler.Get)
		protected.GET("/store/:storeID/shelf", inventoryProductHandler.Shelf)

		// Store management (admins)
		admin := protected.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/store", storeHandler.Create)
			admin.PUT("/store/:storeID", storeHandler.Update)
			admin.DELETE("/store/:storeID", storeHandler.Delete)

			admin.POST("/store/:storeID/employee", employeeHandler.Create)
			admin.PUT("/employees/:employeeID", employeeHandler.Update)
			admin.DELETE("/employees/:employeeID", employeeHandler.Delete)
		}

		// Staff reads
		staff := protected.Group("")
		staff.Use(middleware.RequireEmployee())
		{
			staff.GET("/store/:storeID/employee", employeeHandler.ListByStore)
			staff.GET("/employees/:employeeID", employeeHandler.Get)
			staff.GET("/customer", customerHandler.List)
		}

		// Customer profile
		protected.GET("/customer/:customerID", customerHandler.Get)
		protected.PUT("/customer/:customerID", customerHandler.Update)
		protected.DELETE("/customer/:customerID", customerHandler.Delete)

		// Receiving pipeline (receiving staff)
		receivingGroup := protected.Group("")
		receivingGroup.Use(middleware.RequireReceiving())
		{
			receivingGroup.POST("/store/:storeID/inventory-order", inventoryOrderHandler.Create)
			receivingGroup.GET("/store/:storeID/inventory-order", inventoryOrderHandler.ListByStore)
			receivingGroup.GET("/inventories/:inventoryOrderID", inventoryOrderHandler.Get)
			receivingGroup.POST("/inventories/:inventoryOrderID/product", inventoryOrderHandler.AddProduct)
			receivingGroup.POST("/inventories/:inventoryOrderID/complete", inventoryOrderHandler.Complete)
			receivingGroup.DELETE("/inventories/:inventoryOrderID", inventoryOrderHandler.Delete)
			receivingGroup.DELETE("/inventory-products/:productID", inventoryOrderHandler.RemoveProduct)
			receivingGroup.GET("/inventory-products", inventoryProductHandler.List)
			receivingGroup.GET("/inventory-products/:productID", inventoryProductHandler.Get)
			receivingGroup.DELETE("/store/:storeID/shelf/:productID", inventoryProductHandler.RemoveFromShelf)
		}

		// Cart fulfillment pipeline
		protected.POST("/customer/:customerID/store/:storeID/order", cartOrderHandler.Create)
		protected.GET("/orders/:cartOrderID", cartOrderHandler.Get)
		protected.PUT("/orders/:cartOrderID", cartOrderHandler.Update)
		protected.POST("/orders/:cartOrderID/store/:storeID/cart", cartOrderHandler.AddProduct)
		protected.DELETE("/orders/:cartOrderID", cartOrderHandler.Delete)
		protected.GET("/products", cartProductHandler.List)
		protected.GET("/products/:productID", cartProductHandler.Get)
		protected.PUT("/store/:storeID/products/:productID", cartProductHandler.UpdateQuantity)
		protected.DELETE("/products/:productID", cartProductHandler.Delete)

		// Completing a cart order ships it (shipping staff)
		shipping := protected.Group("")
		shipping.Use(middleware.RequireShipping())
		{
			shipping.POST("/orders/:cartOrderID/complete", cartOrderHandler.Complete)
		}
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, middleware.HeaderTraceID},
		ExposeHeaders:    []string{middleware.HeaderRequestID, middleware.HeaderTraceID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}
