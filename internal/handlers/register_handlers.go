package handlers

import (
	"github.com/SscSPs/mlm_backoffice/cmd/docs"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
	"github.com/SscSPs/mlm_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// idempotency guards the submission endpoints; it may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	idempotency *middleware.Idempotency,
) {
	registerValidators()

	registerHealthRoutes(r, cfg.StorageDriver)

	// Public development-only token route
	registerAuthRoutes(r, cfg, services.User)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, idempotency)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	idempotency *middleware.Idempotency,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	submit := idempotentHandler(idempotency)

	registerMemberRequestRoutes(v1, service.Adjudication, submit)
	registerWalletRoutes(v1, service.Wallet)
	registerRecruitRoutes(v1, service.Recruit, submit)
	registerReportingRoutes(v1, service.Reporting)
	registerEventRoutes(v1, service.Events, service.User)

	// Admin privileges are enforced by the services so the same rule holds for every caller.
	admin := v1.Group("/admin")
	registerAdminRequestRoutes(admin, service.Adjudication, submit)
	registerAdminRecruitRoutes(admin, service.Recruit)
	registerUserRoutes(admin, service.User, service.Wallet)
}

func idempotentHandler(idempotency *middleware.Idempotency) gin.HandlerFunc {
	if idempotency == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return idempotency.Handler()
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
