package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing engine functionality and is
// what the handlers are wired against.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Ledger     LedgerSvcFacade
	Transfer   TransferSvcFacade
	Identifier IdentifierSvcFacade
}
