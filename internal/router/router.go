// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dscommerce/dscommerce-backend/internal/config"
	"github.com/dscommerce/dscommerce-backend/internal/handlers"
	"github.com/dscommerce/dscommerce-backend/internal/middleware"
	"github.com/dscommerce/dscommerce-backend/internal/services"
)

// Dependencies lets callers replace collaborators that talk to the outside
// world. Nil fields are built from the config.
type Dependencies struct {
	Storage  *services.StorageService
	Limiters *middleware.Limiters
	Metrics  *middleware.Metrics
}

func Initialize(db *gorm.DB, cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	storageService := deps.Storage
	if storageService == nil {
		var err error
		if storageService, err = services.NewStorageService(cfg); err != nil {
			return nil, err
		}
	}
	limiters := deps.Limiters
	if limiters == nil {
		limiters = middleware.DefaultLimiters()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = middleware.NewMetrics()
	}

	// Initialize services
	userService := services.NewUserService(db)
	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db)
	categoryService := services.NewCategoryService(db)
	orderService := services.NewOrderService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	orderHandler := handlers.NewOrderHandler(orderService)

	authRequired := middleware.AuthRequired(userService)
	adminRequired := middleware.AdminRequired()

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limiters.General.Middleware())

	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": "1.0.0",
		})
	})

	r.GET("/metrics", metrics.Handler())

	auth := r.Group("/auth")
	auth.Use(limiters.Auth.Middleware())
	{
		auth.POST("/login", authHandler.Login)
	}

	products := r.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)

		admin := products.Group("")
		admin.Use(authRequired, adminRequired)
		{
			admin.POST("", productHandler.CreateProduct)
			admin.PUT("/:id", productHandler.UpdateProduct)
			admin.DELETE("/:id", productHandler.DeleteProduct)
			admin.POST("/:id/image", limiters.Upload.Middleware(), productHandler.UploadImage)
		}
	}

	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.GetCategories)

		admin := categories.Group("")
		admin.Use(authRequired, adminRequired)
		{
			admin.POST("", categoryHandler.CreateCategory)
			admin.DELETE("/:id", categoryHandler.DeleteCategory)
		}
	}

	orders := r.Group("/orders")
	orders.Use(authRequired)
	{
		orders.GET("/my-orders", orderHandler.GetMyOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("", orderHandler.CreateOrder)
	}

	users := r.Group("/users")
	users.Use(authRequired)
	{
		users.GET("/me", userHandler.GetMe)
		users.GET("/:id", userHandler.GetUser)
		users.POST("", adminRequired, userHandler.CreateUser)
	}

	// Uploaded images are served from disk when no bucket is configured
	if !storageService.UsesS3() {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}

	return r, nil
}
