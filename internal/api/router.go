package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emycrochet/storefront-api/internal/api/handlers"
	"github.com/emycrochet/storefront-api/internal/api/middleware"
	"github.com/emycrochet/storefront-api/internal/config"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, orders handlers.OrderFlow, cat handlers.Catalog, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		logger.Error("Panic recovered", zap.Any("error", err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	// Wrong method on a known path answers 405, matching the boundary contract.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiRoutes := router.Group("/api")
	{
		apiRoutes.POST("/create-order", handlers.HandleCreateOrder(orders, logger))
		apiRoutes.POST("/capture-order", handlers.HandleCaptureOrder(orders, logger))
		apiRoutes.GET("/products", handlers.HandleListProducts(cat, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
