package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
	"github.com/SscSPs/mlm_backoffice/internal/platform/config"
	"github.com/SscSPs/mlm_backoffice/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler mints tokens for local development. In production tokens come from the
// identity provider and this handler is not mounted.
type authHandler struct {
	userService portssvc.UserReaderSvc
	jwtSecret   string
	jwtIssuer   string
	jwtDuration time.Duration
}

func newAuthHandler(us portssvc.UserReaderSvc, cfg *config.Config) *authHandler {
	return &authHandler{
		userService: us,
		jwtSecret:   cfg.JWTSecret,
		jwtIssuer:   cfg.JWTIssuer,
		jwtDuration: cfg.JWTExpiryDuration,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, userService portssvc.UserReaderSvc) {
	if cfg.IsProduction {
		return
	}
	h := newAuthHandler(userService, cfg)

	// 5 requests per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	limitMiddleware := limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/dev-token", limitMiddleware, h.devToken)
	}
}

// devToken godoc
// @Summary Mint a development token
// @Description Issues a bearer token for an existing user. Not available in production.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.DevTokenRequest true "User to impersonate"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Failed to generate token"
// @Router /auth/dev-token [post]
func (h *authHandler) devToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DevTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), req.UserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate token")
		return
	}

	token, err := utils.GenerateJWT(user.UserID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Warn("Issued development token", slog.String("subject", user.UserID), slog.String("role", string(user.Role)))
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token, ExpiresIn: int64(h.jwtDuration.Seconds())})
}
