package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/banking_backoffice_app/cmd/docs"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/middleware"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/config"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/metrics"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := r.Group("/api")

	// Public routes
	registerPublicUserRoutes(api, cfg, services.User, services.Token)
	registerTokenRoutes(api, services.Token)

	// Everything else needs a valid access token
	secured := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	registerAccountRoutes(secured, services.Ledger, services.Record)
	registerSupportRoutes(secured, services.Ledger, services.Record)
	registerUserRoutes(secured, services.User)
	registerAdminRoutes(secured, services.User)

	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
