package dto

import (
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IncomeReportParams defines query parameters for GET /income-reports.
// Dates are YYYY-MM-DD; endDate is inclusive.
type IncomeReportParams struct {
	TransactionTypes string `form:"transactionTypes"` // comma separated entry types
	UserID           string `form:"userId"`
	StartDate        string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate          string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Limit            int    `form:"limit,default=500" binding:"omitempty,min=1,max=5000"`
}

// IncomeTotalResponse is a per-type subtotal.
type IncomeTotalResponse struct {
	TransactionType string          `json:"transactionType"`
	Count           int             `json:"count"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string"`
}

// IncomeReportResponse represents the income report response
type IncomeReportResponse struct {
	Rows       []LedgerEntryResponse `json:"rows"`
	Totals     []IncomeTotalResponse `json:"totals"`
	GrandTotal decimal.Decimal       `json:"grandTotal" swaggertype:"string"`
}

// ToIncomeReportResponse converts a domain.IncomeReport.
func ToIncomeReportResponse(r *domain.IncomeReport) IncomeReportResponse {
	totals := make([]IncomeTotalResponse, len(r.Totals))
	for i, t := range r.Totals {
		totals[i] = IncomeTotalResponse{
			TransactionType: string(t.EntryType),
			Count:           t.Count,
			Amount:          t.Amount,
		}
	}
	return IncomeReportResponse{
		Rows:       ToLedgerEntryResponses(r.Entries),
		Totals:     totals,
		GrandTotal: r.GrandTotal,
	}
}
