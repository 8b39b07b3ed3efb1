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

// adminRequestHandler handles adjudication and direct wallet adjustments.
type adminRequestHandler struct {
	adjudicationService portssvc.AdjudicationSvcFacade
}

func newAdminRequestHandler(as portssvc.AdjudicationSvcFacade) *adminRequestHandler {
	return &adminRequestHandler{
		adjudicationService: as,
	}
}

// registerAdminRequestRoutes registers the admin console routes for requests and adjustments.
// Approve and reject are deliberately not idempotent: a repeat must fail with 409.
func registerAdminRequestRoutes(rg *gin.RouterGroup, adjudicationService portssvc.AdjudicationSvcFacade, idempotent gin.HandlerFunc) {
	h := newAdminRequestHandler(adjudicationService)

	requests := rg.Group("/requests")
	{
		requests.GET("", h.listRequests)
		requests.GET("/:id", h.getRequest)
		requests.POST("/:id/approve", h.approveRequest)
		requests.POST("/:id/reject", h.rejectRequest)
		requests.PATCH("/:id/notes", h.annotateRequest)
	}

	rg.POST("/send-fund", idempotent, h.sendFund)
	rg.POST("/withdraw-personally", idempotent, h.withdrawPersonally)
}

// listRequests godoc
// @Summary List requests
// @Description Lists requests across all users, newest first. Filters are optional.
// @Tags admin
// @Produce json
// @Param kind query string false "FUND_REQUEST or WITHDRAWAL_REQUEST"
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param userId query string false "Only requests of this user"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 500 {object} dto.ErrorResponse "Failed to list requests"
// @Security BearerAuth
// @Router /admin/requests [get]
func (h *adminRequestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for admin ListRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter := domain.RequestFilter{
		UserID: params.UserID,
		Kind:   domain.RequestKind(params.Kind),
		Status: domain.RequestStatus(params.Status),
	}
	requests, nextToken, err := h.adjudicationService.ListRequests(c.Request.Context(), adminID, filter, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list requests")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRequestsResponse(requests, nextToken))
}

// getRequest godoc
// @Summary Get a request
// @Tags admin
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve request"
// @Security BearerAuth
// @Router /admin/requests/{id} [get]
func (h *adminRequestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.adjudicationService.GetRequest(c.Request.Context(), requestID, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("request_id", requestID)), err, "Failed to retrieve request")
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// approveRequest godoc
// @Summary Approve a request
// @Description Approves a pending request and applies its ledger effect atomically. An optional amount overrides the requested amount.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.ApproveRequest false "Optional override amount"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not pending"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 500 {object} dto.ErrorResponse "Failed to approve request"
// @Security BearerAuth
// @Router /admin/requests/{id}/approve [post]
func (h *adminRequestHandler) approveRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for ApproveRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("request_id", requestID))
	request, err := h.adjudicationService.Approve(c.Request.Context(), requestID, adminID, req.Amount)
	if err != nil {
		respondWithError(c, logger, err, "Failed to approve request")
		return
	}

	logger.Info("Request approved", slog.String("kind", string(request.Kind)))
	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// rejectRequest godoc
// @Summary Reject a request
// @Description Rejects a pending request. The wallet is not touched.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.RejectRequest false "Reason"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not pending"
// @Failure 500 {object} dto.ErrorResponse "Failed to reject request"
// @Security BearerAuth
// @Router /admin/requests/{id}/reject [post]
func (h *adminRequestHandler) rejectRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for RejectRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("request_id", requestID))
	request, err := h.adjudicationService.Reject(c.Request.Context(), requestID, adminID, req.Notes)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reject request")
		return
	}

	logger.Info("Request rejected")
	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// annotateRequest godoc
// @Summary Update admin notes
// @Description Replaces the admin notes of a request in any status. Status and amounts are unchanged.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.AnnotateRequest true "Notes"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update notes"
// @Security BearerAuth
// @Router /admin/requests/{id}/notes [patch]
func (h *adminRequestHandler) annotateRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AnnotateRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.adjudicationService.AnnotateRequest(c.Request.Context(), requestID, adminID, req.Notes)
	if err != nil {
		respondWithError(c, logger.With(slog.String("request_id", requestID)), err, "Failed to update notes")
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// sendFund godoc
// @Summary Credit or debit a wallet directly
// @Description Applies an immediate adjustment with no pending request. A debit may not overdraw the wallet.
// @Tags admin
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for repeated submissions"
// @Param request body dto.SendFundRequest true "Adjustment"
// @Success 200 {object} dto.AdjustmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Wallet not found"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 500 {object} dto.ErrorResponse "Failed to adjust wallet"
// @Security BearerAuth
// @Router /admin/send-fund [post]
func (h *adminRequestHandler) sendFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SendFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SendFund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_user_id", req.UserID), slog.String("option", string(req.Option)))
	wallet, entry, err := h.adjudicationService.DirectAdjust(c.Request.Context(), adminID, req.UserID, req.SignedAmount(), req.Remarks)
	if err != nil {
		respondWithError(c, logger, err, "Failed to adjust wallet")
		return
	}

	c.JSON(http.StatusOK, dto.AdjustmentResponse{
		Wallet: dto.ToWalletResponse(wallet),
		Entry:  dto.ToLedgerEntryResponse(entry),
	})
}

// withdrawPersonally godoc
// @Summary File a withdrawal for a member
// @Description Creates a pending withdrawal on the member's behalf. It still needs approval.
// @Tags admin
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for repeated submissions"
// @Param request body dto.WithdrawPersonallyRequest true "Withdrawal details"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Wallet not found"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 500 {object} dto.ErrorResponse "Failed to submit withdrawal"
// @Security BearerAuth
// @Router /admin/withdraw-personally [post]
func (h *adminRequestHandler) withdrawPersonally(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithdrawPersonallyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for WithdrawPersonally", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.adjudicationService.WithdrawOnBehalf(c.Request.Context(), adminID, req)
	if err != nil {
		respondWithError(c, logger.With(slog.String("target_user_id", req.UserID)), err, "Failed to submit withdrawal")
		return
	}

	logger.Info("Withdrawal filed on behalf of member", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(request))
}
