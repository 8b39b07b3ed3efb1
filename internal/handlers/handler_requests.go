package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requestHandler handles member-facing fund and withdrawal requests.
type requestHandler struct {
	adjudicationService portssvc.AdjudicationSvcFacade
}

// newRequestHandler creates a new requestHandler.
func newRequestHandler(as portssvc.AdjudicationSvcFacade) *requestHandler {
	return &requestHandler{
		adjudicationService: as,
	}
}

// registerMemberRequestRoutes registers the routes members use to file and follow their requests.
func registerMemberRequestRoutes(rg *gin.RouterGroup, adjudicationService portssvc.AdjudicationSvcFacade, idempotent gin.HandlerFunc) {
	h := newRequestHandler(adjudicationService)

	fundRequests := rg.Group("/fund-requests")
	{
		fundRequests.POST("", idempotent, h.submitFundRequest)
		fundRequests.GET("", h.listOwnRequests(domain.FundRequest))
	}

	withdrawalRequests := rg.Group("/withdrawal-requests")
	{
		withdrawalRequests.POST("", idempotent, h.submitWithdrawalRequest)
		withdrawalRequests.GET("", h.listOwnRequests(domain.WithdrawalRequest))
	}
}

// submitFundRequest godoc
// @Summary Request funds
// @Description Files a pending request to add funds to the caller's wallet. The wallet is not touched until an admin approves it.
// @Tags requests
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for repeated submissions"
// @Param request body dto.SubmitFundRequest true "Fund request details"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Wallet not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to submit fund request"
// @Security BearerAuth
// @Router /fund-requests [post]
func (h *requestHandler) submitFundRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitFundRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.adjudicationService.SubmitFundRequest(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to submit fund request")
		return
	}

	logger.Info("Fund request submitted", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(request))
}

// submitWithdrawalRequest godoc
// @Summary Request a withdrawal
// @Description Files a pending withdrawal. The amount must be covered by the current balance; it is checked again on approval.
// @Tags requests
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for repeated submissions"
// @Param request body dto.SubmitWithdrawalRequest true "Withdrawal details"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 500 {object} dto.ErrorResponse "Failed to submit withdrawal request"
// @Security BearerAuth
// @Router /withdrawal-requests [post]
func (h *requestHandler) submitWithdrawalRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitWithdrawalRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.adjudicationService.SubmitWithdrawalRequest(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to submit withdrawal request")
		return
	}

	logger.Info("Withdrawal request submitted", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(request))
}

// listOwnRequests godoc
// @Summary List my requests
// @Description Lists the caller's own requests of one kind, newest first.
// @Tags requests
// @Produce json
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list requests"
// @Security BearerAuth
// @Router /fund-requests [get]
// @Router /withdrawal-requests [get]
func (h *requestHandler) listOwnRequests(kind domain.RequestKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		var params dto.ListRequestsParams
		if err := c.ShouldBindQuery(&params); err != nil {
			logger.Warn("Invalid query parameters for ListRequests", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
			return
		}

		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			logger.Error("User ID not found in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		filter := domain.RequestFilter{
			UserID: userID,
			Kind:   kind,
			Status: domain.RequestStatus(params.Status),
		}
		requests, nextToken, err := h.adjudicationService.ListRequests(c.Request.Context(), userID, filter, params.Limit, params.NextToken)
		if err != nil {
			respondWithError(c, logger, err, "Failed to list requests")
			return
		}

		c.JSON(http.StatusOK, dto.ToListRequestsResponse(requests, nextToken))
	}
}
