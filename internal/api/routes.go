package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kalabar794/landgenai/internal/handler"
	"github.com/kalabar794/landgenai/internal/middleware"
	"github.com/kalabar794/landgenai/internal/telemetry"
)

// Handlers groups the API handlers.
type Handlers struct {
	Generate     *handler.GenerateHandler
	Images       *handler.ImagesHandler
	LandingPages *handler.LandingPageHandler
	Pexels       *handler.PexelsHandler
	Health       *handler.HealthHandler
}

// SetupRoutes configures all API routes. limiter may be nil to disable
// rate limiting. Service health routes are registered by the builder.
func SetupRoutes(router *gin.Engine, h Handlers, limiter *middleware.RateLimiter, metrics *telemetry.Provider) {
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api")
	api.GET("/health", h.Health.Health)

	generation := api.Group("")
	if limiter != nil {
		generation.Use(limiter.Middleware())
	}
	generation.POST("/generate", h.Generate.Generate)
	generation.POST("/images", h.Images.Curate)

	pages := api.Group("/landing-pages")
	pages.GET("", h.LandingPages.List)
	pages.POST("", h.LandingPages.Create)
	pages.GET("/:id", h.LandingPages.Get)
	pages.PUT("/:id", h.LandingPages.Update)
	pages.DELETE("/:id", h.LandingPages.Delete)

	api.GET("/pexels", h.Pexels.Search)
	api.POST("/pexels", h.Pexels.Batch)
}
