package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sathishthangasamy/healthcare-product-selector/config"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/infrastructure/cache"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/metrics"
)

// SetupRouter creates and configures the Gin router.
// limiters may be nil, which disables per-IP rate limiting.
func SetupRouter(cfg *config.Config, handler *Handler, log *zap.Logger, limiters *cache.MemoryCache[*rate.Limiter]) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(log))
	router.Use(RequestIDMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(metrics.Middleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL, limiters))
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.POST("/search", handler.SearchProducts)
			products.GET("/categories", handler.ProductCategories)
		}

		plans := v1.Group("/plans")
		{
			plans.GET("", handler.ListPlans)
			plans.POST("/search", handler.SearchPlans)
			plans.GET("/priorities", handler.PlanPriorities)
		}

		v1.GET("/plan-types/:type", handler.GetPlanType)
	}

	return router
}
