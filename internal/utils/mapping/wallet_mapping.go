package mapping

import (
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/models"
)

// ToModelWallet converts a domain WalletAccount to a model Wallet
func ToModelWallet(d domain.WalletAccount) models.Wallet {
	return models.Wallet{
		UserID:           d.UserID,
		Balance:          d.Balance,
		TotalEarnings:    d.TotalEarnings,
		TotalWithdrawals: d.TotalWithdrawals,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWallet converts a model Wallet to a domain WalletAccount
func ToDomainWallet(m models.Wallet) domain.WalletAccount {
	return domain.WalletAccount{
		UserID:           m.UserID,
		Balance:          m.Balance,
		TotalEarnings:    m.TotalEarnings,
		TotalWithdrawals: m.TotalWithdrawals,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
