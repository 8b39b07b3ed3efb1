package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles HTTP requests related to income reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to income reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)
	rg.GET("/income-reports", h.getIncomeReport)
}

// getIncomeReport godoc
// @Summary Generate an income report
// @Description Lists ledger entries with per-type subtotals. Members only ever see their own entries.
// @Tags reports
// @Produce json
// @Param transactionTypes query string false "Comma separated entry types, e.g. FUND_REQUEST,WITHDRAWAL"
// @Param userId query string false "Restrict to one user (admins only)"
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param limit query int false "Maximum rows" default(500)
// @Success 200 {object} dto.IncomeReportResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden (another user's report)"
// @Failure 500 {object} dto.ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /income-reports [get]
func (h *reportingHandler) getIncomeReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.IncomeReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for income report", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter := domain.IncomeReportFilter{
		EntryTypes: parseEntryTypes(params.TransactionTypes),
		UserID:     params.UserID,
		Limit:      params.Limit,
	}
	var err error
	if filter.StartDate, err = parseReportDate(params.StartDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate format. Use YYYY-MM-DD"})
		return
	}
	if filter.EndDate, err = parseReportDate(params.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate format. Use YYYY-MM-DD"})
		return
	}

	logger.Info("Received request for income report",
		slog.Int("types", len(filter.EntryTypes)),
		slog.String("start_date", params.StartDate),
		slog.String("end_date", params.EndDate))

	report, err := h.reportingService.GetIncomeReport(c.Request.Context(), userID, filter)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate report")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeReportResponse(report))
}

func parseEntryTypes(raw string) []domain.EntryType {
	if raw == "" {
		return nil
	}
	var types []domain.EntryType
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			types = append(types, domain.EntryType(part))
		}
	}
	return types
}

func parseReportDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(reportDateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
