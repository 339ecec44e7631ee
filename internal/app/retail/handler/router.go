package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lingonberry/internal/app/retail/config"
	"lingonberry/internal/app/retail/entity"
	"lingonberry/pkg/logger"
	"lingonberry/pkg/metrics"
)

// Handlers объединяет все обработчики для настройки маршрутов
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Catalog   *CatalogHandler
	Store     *StoreHandler
	Inventory *InventoryHandler
	Sale      *SaleHandler
	Dashboard *DashboardHandler
	Report    *ReportHandler
}

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(h *Handlers, authMiddleware *AuthMiddleware, corsCfg config.CORSConfig) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("lingonberry"))

	// CORS: список origin-ов приходит из конфигурации
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsCfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "lingonberry",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Аутентификация: login и refresh публичные
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)

		protected := auth.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.GET("/me", h.Auth.GetMe)
			protected.POST("/logout", h.Auth.Logout)
		}
	}

	// Каталог товаров
	products := api.Group("/products")
	products.Use(authMiddleware.Authenticate())
	{
		products.GET("", h.Catalog.GetProducts)
		products.GET("/:id", h.Catalog.GetProduct)
		products.POST("", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Catalog.CreateProduct)
		products.PUT("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Catalog.UpdateProduct)
		products.DELETE("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Catalog.DeleteProduct)
	}

	categories := api.Group("/categories")
	categories.Use(authMiddleware.Authenticate())
	{
		categories.GET("", h.Catalog.GetCategories)
	}

	// Магазины
	stores := api.Group("/stores")
	stores.Use(authMiddleware.Authenticate())
	{
		stores.GET("", h.Store.GetStores)
		stores.GET("/:id", h.Store.GetStore)
		stores.POST("", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Store.CreateStore)
		stores.PUT("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Store.UpdateStore)
		stores.DELETE("/:id", authMiddleware.RequireRole(entity.RoleOwner), h.Store.DeleteStore)
	}

	// Пользователи: управление только для администраторов
	users := api.Group("/users")
	users.Use(authMiddleware.Authenticate())
	users.Use(authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner))
	{
		users.GET("", h.User.GetUsers)
		users.GET("/:id", h.User.GetUser)
		users.POST("", h.User.CreateUser)
		users.PUT("/:id", h.User.UpdateUser)
		users.DELETE("/:id", h.User.DeleteUser)
	}

	// Инвентарь
	inventory := api.Group("/inventory")
	inventory.Use(authMiddleware.Authenticate())
	{
		inventory.GET("/:id", h.Inventory.GetItem)
		inventory.GET("/store/:storeId", h.Inventory.GetStoreInventory)
		inventory.GET("/low-stock/:storeId", h.Inventory.GetLowStock)
		inventory.POST("", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Inventory.CreateItem)
		inventory.PUT("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Inventory.UpdateItem)
		inventory.DELETE("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Inventory.DeleteItem)
	}

	// Продажи: регистрация доступна сотрудникам, удаление администраторам
	sales := api.Group("/sales")
	sales.Use(authMiddleware.Authenticate())
	{
		sales.GET("", h.Sale.GetSales)
		sales.GET("/:id", h.Sale.GetSale)
		sales.POST("", h.Sale.RegisterSale)
		sales.DELETE("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Sale.DeleteSale)
	}

	// Дашборд
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.Authenticate())
	{
		dashboard.GET("/summary", h.Dashboard.GetSummary)
		dashboard.GET("/sales-last-7-days", h.Dashboard.GetSalesLastDays)
	}

	// Отчёты
	reports := api.Group("/reports")
	reports.Use(authMiddleware.Authenticate())
	{
		reports.GET("", h.Report.GetReports)
		reports.GET("/:id", h.Report.GetReport)
		reports.GET("/download/:id", h.Report.DownloadReport)
		reports.POST("", h.Report.CreateReport)
		reports.PUT("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Report.UpdateReport)
		reports.DELETE("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleOwner), h.Report.DeleteReport)
	}

	return router
}
