package services

import (
	"context"

	"github.com/cashg/cashg-ledger/internal/core/domain"
	"github.com/cashg/cashg-ledger/internal/dto"
)

// AccountSvcFacade exposes account lifecycle operations.
type AccountSvcFacade interface {
	// OpenAccount creates a new user identity together with their account
	// (balance zero) as one atomic unit. Fails with
	// apperrors.ErrDuplicateUser when the username is taken.
	OpenAccount(ctx context.Context, req dto.OpenAccountRequest) (*domain.Account, error)

	// GetAccountForUser returns the account owned by the given identity.
	GetAccountForUser(ctx context.Context, userID string) (*domain.Account, error)

	// DeactivateAccount marks the caller's account inactive. Deposits remain
	// possible; withdrawals and transfers are blocked.
	DeactivateAccount(ctx context.Context, userID string) error
}
