package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/api"
	"github.com/pageza/recipebook/backend/internal/middleware"
)

// SetupRouter configures the application routes. A nil limiter disables rate limiting.
func SetupRouter(cfg *config.Config, db *gorm.DB, limiter middleware.Limiter, log *zap.Logger) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Metrics(),
		middleware.ErrorHandler(log),
		middleware.CORS(cfg.CORSOrigins),
	)

	// Operational endpoints are never rate limited
	router.GET("/health", api.NewHealthHandler(db, log).HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	recipes := router.Group("")
	if limiter != nil {
		recipes.Use(middleware.RateLimit(limiter, log))
	}
	api.RegisterRoutes(recipes, db, log)

	return router
}
