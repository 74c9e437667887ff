package rest

import (
	"net/http"
	"strconv"

	"kyc-screening/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CORSMiddleware возвращает middleware для обработки CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SetupCommonEndpoints добавляет общие endpoints (health, events, stats, metrics)
func SetupCommonEndpoints(router *gin.Engine, gatherer prometheus.Gatherer) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Журнал событий конвейера
	router.GET("/api/v1/events", func(c *gin.Context) {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= maxLimit {
				limit = parsed
			}
		}
		c.JSON(http.StatusOK, gin.H{"events": logger.GetEvents(limit)})
	})

	router.GET("/api/v1/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, logger.GetStats())
	})

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterRoutes регистрирует маршруты API в группе /api/v1
func RegisterRoutes(api *gin.RouterGroup, handlers *Handlers) {
	api.POST("/screenings", handlers.ScreenCustomer)
	api.POST("/screenings/batch", handlers.ScreenBatch)
	api.POST("/screenings/generate", handlers.GenerateScreenings)
	api.GET("/screenings", handlers.ListScreenings)
	api.GET("/screenings/:screening_id", handlers.GetScreening)
	api.GET("/screenings/:screening_id/report", handlers.GetReport)
	api.PUT("/screenings/:screening_id/review", handlers.ReviewScreening)
	api.DELETE("/screenings", handlers.ClearScreenings)

	api.GET("/customers", handlers.ListCustomers)
	api.GET("/customers/:customer_code", handlers.GetCustomer)

	api.GET("/sanctions", handlers.SearchSanctions)
	api.GET("/sanctions/:id", handlers.GetSanction)

	api.GET("/statistics", handlers.GetStatistics)
	api.GET("/cache/stats", handlers.CacheStats)
	api.GET("/export/:kind", handlers.Export)
	api.GET("/reports/:kind", handlers.ComplianceReport)
}

// SetupRouter настраивает маршруты REST API
func SetupRouter(handlers *Handlers, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()

	router.Use(CORSMiddleware())
	router.Use(gin.Logger(), gin.Recovery())

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	RegisterRoutes(router.Group("/api/v1"), handlers)

	// Общие endpoints (health, events, stats, metrics)
	SetupCommonEndpoints(router, gatherer)

	return router
}
