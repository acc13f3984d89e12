package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/slimatic/zakapp-sub006/cmd/docs"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/middleware"
	"github.com/slimatic/zakapp-sub006/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators adds the "methodology" binding tag used by
// calculation and snapshot requests.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("methodology", func(fl validator.FieldLevel) bool {
			return domain.Methodology(fl.Field().String()).IsValidForCalculation()
		})
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware and a per-IP rate limit to the entire v1 group.
	// Login has its own stricter limit in registerAuthRoutes.
	rate, _ := limiter.NewRateFromFormatted("120-M")
	apiLimiter := limiter.New(memory.NewStore(), rate)
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimit(apiLimiter),
	)

	registerUserRoutes(v1, services.User)
	registerAssetRoutes(v1, services.Asset)
	registerZakatRoutes(v1, services.Zakat, cfg.DefaultCurrency)
	registerSnapshotRoutes(v1, services.Snapshot)
	registerMethodologyRoutes(v1, services.Methodology)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
