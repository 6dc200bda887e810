package services

import (
	"context"
	"fmt"

	"github.com/cashg/cashg-ledger/internal/apperrors"
	portsrepo "github.com/cashg/cashg-ledger/internal/core/ports/repositories"
	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
	"github.com/cashg/cashg-ledger/internal/utils/identifier"
)

// maxGenerationAttempts caps the rejection-sampling loop. The identifier
// spaces are large enough that hitting the cap means something is badly
// wrong with the store or the randomness source.
const maxGenerationAttempts = 10

// identifierService generates unique identifiers by drawing random
// candidates and rejecting any already present in the store. The unique
// constraints on the underlying columns remain the authority; this loop only
// avoids constraint-violation churn.
type identifierService struct {
	accounts  portsrepo.AccountReader
	ledger    portsrepo.LedgerReader
	transfers portsrepo.TransferReader
}

// NewIdentifierService creates a new identifier generator backed by the
// given stores.
func NewIdentifierService(accounts portsrepo.AccountReader, ledger portsrepo.LedgerReader, transfers portsrepo.TransferReader) portssvc.IdentifierSvcFacade {
	return &identifierService{
		accounts:  accounts,
		ledger:    ledger,
		transfers: transfers,
	}
}

var _ portssvc.IdentifierSvcFacade = (*identifierService)(nil)

// AccountNumber returns a fresh 12-digit account number (dddd-dddd-dddd).
func (s *identifierService) AccountNumber(ctx context.Context) (string, error) {
	return s.generate(ctx, identifier.NewAccountNumber, s.accounts.AccountNumberExists)
}

// ReferenceNumber returns a fresh transaction reference number (TXN-...).
func (s *identifierService) ReferenceNumber(ctx context.Context) (string, error) {
	return s.generate(ctx, identifier.NewReferenceNumber, s.ledger.ReferenceNumberExists)
}

// TransferID returns a fresh transfer identifier (TRF-...).
func (s *identifierService) TransferID(ctx context.Context) (string, error) {
	return s.generate(ctx, identifier.NewTransferID, s.transfers.TransferIDExists)
}

func (s *identifierService) generate(ctx context.Context, candidate func() (string, error), exists func(context.Context, string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		id, err := candidate()
		if err != nil {
			return "", fmt.Errorf("failed to generate identifier candidate: %w", err)
		}
		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check identifier uniqueness: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no unique candidate after %d attempts", apperrors.ErrIdentifierExhausted, maxGenerationAttempts)
}
