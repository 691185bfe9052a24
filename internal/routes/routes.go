package routes

import (
	"net/http"
	"time"

	_ "fursa_backend/docs"
	"fursa_backend/internal/handlers"
	"fursa_backend/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options - служебные маршруты, которые зависят от конфигурации
type Options struct {
	Metrics    http.Handler // nil - /metrics не регистрируется
	UploadsDir string       // локальное хранилище: раздача /uploads
	Swagger    bool
	Version    string
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	opts Options,
) {
	startedAt := time.Now()

	api := ginRouter.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"status":  "OK",
				"version": opts.Version,
				"uptime":  time.Since(startedAt).Round(time.Second).String(),
			})
		})

		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProviderHandler.RegisterRoutes(api)
		appHandlers.TalentHandler.RegisterRoutes(api)
		appHandlers.SearchHandler.RegisterRoutes(api)
		appHandlers.UploadHandler.RegisterRoutes(api)
	}

	if opts.Metrics != nil {
		ginRouter.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	if opts.UploadsDir != "" {
		ginRouter.Static("/uploads", opts.UploadsDir)
	}

	if opts.Swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI available at /swagger/index.html")
	}

	ginRouter.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Route not found",
			"code":    "NOT_FOUND",
		})
	})
}
