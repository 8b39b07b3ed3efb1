package services

import (
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher receives events after commit; stream is what the SSE handler subscribes to.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher, stream portssvc.EventStream) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Events: stream}

	// Initialize user service first since every other service authorizes through it
	container.User = NewUserService(repos.TxManager, repos.UserRepo, repos.WalletRepo)

	common := []BaseOption{
		WithAdminAuthorizer(container.User),
		WithEventPublisher(publisher),
	}

	container.Adjudication = NewAdjudicationService(repos.TxManager, repos.RequestRepo, repos.WalletRepo, repos.LedgerRepo, common...)
	container.Wallet = NewWalletService(repos.WalletRepo, repos.LedgerRepo, common...)
	container.Recruit = NewRecruitService(repos.TxManager, repos.RecruitRepo, repos.UserRepo, repos.WalletRepo, common...)
	container.Reporting = NewReportingService(repos.ReportingRepo, common...)

	return container
}
