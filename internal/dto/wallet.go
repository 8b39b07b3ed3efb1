package dto

import (
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletResponse is the API shape of a wallet.
type WalletResponse struct {
	UserID           string          `json:"userID"`
	Balance          decimal.Decimal `json:"balance" swaggertype:"string"`
	TotalEarnings    decimal.Decimal `json:"totalEarnings" swaggertype:"string"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals" swaggertype:"string"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// LedgerEntryResponse is the API shape of a ledger entry.
type LedgerEntryResponse struct {
	EntryID       string          `json:"entryID"`
	UserID        string          `json:"userID"`
	EntryType     string          `json:"entryType"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	BalanceBefore decimal.Decimal `json:"balanceBefore" swaggertype:"string"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter" swaggertype:"string"`
	Description   string          `json:"description"`
	ReferenceID   *string         `json:"referenceID,omitempty"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListLedgerParams defines query parameters for a wallet's ledger.
type ListLedgerParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerResponse wraps a page of ledger entries.
type ListLedgerResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// AdjustmentResponse is returned by send-fund.
type AdjustmentResponse struct {
	Wallet WalletResponse      `json:"wallet"`
	Entry  LedgerEntryResponse `json:"entry"`
}

// ToWalletResponse converts a domain.WalletAccount to WalletResponse DTO.
func ToWalletResponse(w *domain.WalletAccount) WalletResponse {
	return WalletResponse{
		UserID:           w.UserID,
		Balance:          w.Balance,
		TotalEarnings:    w.TotalEarnings,
		TotalWithdrawals: w.TotalWithdrawals,
		LastUpdatedAt:    w.LastUpdatedAt,
	}
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		UserID:        e.UserID,
		EntryType:     string(e.EntryType),
		Amount:        e.Amount,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Description:   e.Description,
		ReferenceID:   e.ReferenceID,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	resp := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		resp[i] = ToLedgerEntryResponse(&entries[i])
	}
	return resp
}
