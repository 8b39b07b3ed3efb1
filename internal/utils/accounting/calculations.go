package accounting

import (
	"fmt"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimal places used for display and descriptions.
const MoneyPrecision = domain.MoneyScale

// ApplyToTotals folds a committed ledger mutation into the wallet's cumulative totals.
// Admin credits count as earnings; approved withdrawals and admin debits count as withdrawals.
// Fund-request credits are top-ups and touch neither total.
func ApplyToTotals(wallet *domain.WalletAccount, entryType domain.EntryType, signedAmount decimal.Decimal) error {
	switch entryType {
	case domain.EntryAdminCredit:
		wallet.TotalEarnings = wallet.TotalEarnings.Add(signedAmount.Abs())
	case domain.EntryWithdrawal, domain.EntryAdminDebit:
		wallet.TotalWithdrawals = wallet.TotalWithdrawals.Add(signedAmount.Abs())
	case domain.EntryFundRequest:
	default:
		return fmt.Errorf("unknown entry type '%s'", entryType)
	}
	return nil
}

// AdjustmentEntryType picks ADMIN_CREDIT or ADMIN_DEBIT from the sign of a direct adjustment.
func AdjustmentEntryType(signedAmount decimal.Decimal) domain.EntryType {
	if signedAmount.IsNegative() {
		return domain.EntryAdminDebit
	}
	return domain.EntryAdminCredit
}

// SummarizeEntries groups entries by type, in domain.AllEntryTypes order, and returns the
// per-type totals with the grand total of all signed amounts.
func SummarizeEntries(entries []domain.LedgerEntry) ([]domain.IncomeTotal, decimal.Decimal) {
	byType := make(map[domain.EntryType]*domain.IncomeTotal)
	grand := decimal.Zero
	for _, e := range entries {
		t, ok := byType[e.EntryType]
		if !ok {
			t = &domain.IncomeTotal{EntryType: e.EntryType, Amount: decimal.Zero}
			byType[e.EntryType] = t
		}
		t.Count++
		t.Amount = t.Amount.Add(e.Amount)
		grand = grand.Add(e.Amount)
	}

	totals := make([]domain.IncomeTotal, 0, len(byType))
	for _, et := range domain.AllEntryTypes {
		if t, ok := byType[et]; ok {
			totals = append(totals, *t)
		}
	}
	return totals, grand
}

// GrandTotal sums per-type totals.
func GrandTotal(totals []domain.IncomeTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Amount)
	}
	return sum
}
