package services

import "context"

// IdentifierSvcFacade produces unique domain-facing identifiers by rejection
// sampling against the corresponding store. Each method retries a bounded
// number of times and fails with apperrors.ErrIdentifierExhausted under
// pathological collision pressure.
type IdentifierSvcFacade interface {
	AccountNumber(ctx context.Context) (string, error)
	ReferenceNumber(ctx context.Context) (string, error)
	TransferID(ctx context.Context) (string, error)
}
