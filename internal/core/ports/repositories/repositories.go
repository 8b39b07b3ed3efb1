package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	UserRepo        UserRepositoryFacade
	WalletRepo      WalletRepositoryFacade
	RequestRepo     RequestRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	RecruitRepo     RecruitRepositoryFacade
	ReportingRepo   ReportingRepository
	IdempotencyRepo IdempotencyRepository
}
