package services

import (
	portsrepo "github.com/cashg/cashg-ledger/internal/core/ports/repositories"
	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies. The identifier service is built first since every other
// service draws identifiers from it.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	identifiers := NewIdentifierService(repos.AccountRepo, repos.LedgerRepo, repos.TransferRepo)

	return &portssvc.ServiceContainer{
		Identifier: identifiers,
		Account:    NewAccountService(repos.AccountRepo, identifiers),
		Ledger:     NewLedgerService(repos.AccountRepo, repos.LedgerRepo, identifiers),
		Transfer:   NewTransferService(repos.UserRepo, repos.AccountRepo, repos.TransferRepo, identifiers),
	}
}
