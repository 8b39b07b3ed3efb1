package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recruitHandler handles downline registrations and their adjudication.
type recruitHandler struct {
	recruitService portssvc.RecruitSvcFacade
}

func newRecruitHandler(rs portssvc.RecruitSvcFacade) *recruitHandler {
	return &recruitHandler{
		recruitService: rs,
	}
}

func registerRecruitRoutes(rg *gin.RouterGroup, recruitService portssvc.RecruitSvcFacade, idempotent gin.HandlerFunc) {
	h := newRecruitHandler(recruitService)
	rg.POST("/recruits", idempotent, h.registerRecruit)
}

func registerAdminRecruitRoutes(rg *gin.RouterGroup, recruitService portssvc.RecruitSvcFacade) {
	h := newRecruitHandler(recruitService)

	recruits := rg.Group("/pending-recruits")
	{
		recruits.GET("", h.listRecruits)
		recruits.POST("/:id/approve", h.approveRecruit)
		recruits.POST("/:id/reject", h.rejectRecruit)
	}
}

// registerRecruit godoc
// @Summary Register a recruit
// @Description Files a downline registration sponsored by the caller. An admin places and approves it.
// @Tags recruits
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for repeated submissions"
// @Param request body dto.RegisterRecruitRequest true "Recruit details"
// @Success 201 {object} dto.RecruitResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to register recruit"
// @Security BearerAuth
// @Router /recruits [post]
func (h *recruitHandler) registerRecruit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRecruitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterRecruit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sponsorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	recruit, err := h.recruitService.RegisterRecruit(c.Request.Context(), sponsorID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to register recruit")
		return
	}

	logger.Info("Recruit registered", slog.String("recruit_id", recruit.RecruitID))
	c.JSON(http.StatusCreated, dto.ToRecruitResponse(recruit))
}

// listRecruits godoc
// @Summary List pending recruits
// @Tags admin
// @Produce json
// @Param status query string false "PENDING, APPROVED, REJECTED or ALL" default(PENDING)
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListRecruitsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 500 {object} dto.ErrorResponse "Failed to list recruits"
// @Security BearerAuth
// @Router /admin/pending-recruits [get]
func (h *recruitHandler) listRecruits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListRecruitsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for ListRecruits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status := domain.RequestStatus(params.Status)
	if params.Status == "ALL" {
		status = ""
	}
	recruits, err := h.recruitService.ListRecruits(c.Request.Context(), adminID, status, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list recruits")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecruitsResponse(recruits))
}

// approveRecruit godoc
// @Summary Approve a recruit
// @Description Creates the member account and wallet, then resolves the recruit.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Recruit ID"
// @Param request body dto.ApproveRecruitRequest true "Placement"
// @Success 200 {object} dto.RecruitResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Recruit not found"
// @Failure 409 {object} dto.ErrorResponse "Recruit is not pending"
// @Failure 500 {object} dto.ErrorResponse "Failed to approve recruit"
// @Security BearerAuth
// @Router /admin/pending-recruits/{id}/approve [post]
func (h *recruitHandler) approveRecruit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recruitID := c.Param("id")

	var req dto.ApproveRecruitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveRecruit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("recruit_id", recruitID))
	recruit, err := h.recruitService.ApproveRecruit(c.Request.Context(), recruitID, adminID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to approve recruit")
		return
	}

	logger.Info("Recruit approved")
	c.JSON(http.StatusOK, dto.ToRecruitResponse(recruit))
}

// rejectRecruit godoc
// @Summary Reject a recruit
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Recruit ID"
// @Param request body dto.RejectRequest false "Reason"
// @Success 200 {object} dto.RecruitResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Recruit not found"
// @Failure 409 {object} dto.ErrorResponse "Recruit is not pending"
// @Failure 500 {object} dto.ErrorResponse "Failed to reject recruit"
// @Security BearerAuth
// @Router /admin/pending-recruits/{id}/reject [post]
func (h *recruitHandler) rejectRecruit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recruitID := c.Param("id")

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for RejectRecruit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	recruit, err := h.recruitService.RejectRecruit(c.Request.Context(), recruitID, adminID, req.Notes)
	if err != nil {
		respondWithError(c, logger.With(slog.String("recruit_id", recruitID)), err, "Failed to reject recruit")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecruitResponse(recruit))
}
