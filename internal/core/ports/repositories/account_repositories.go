package repositories

import (
	"context"
	"time"

	"github.com/cashg/cashg-ledger/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByNumber retrieves a specific account by its account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountByUserID retrieves the single account owned by a user.
	FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)

	// AccountNumberExists reports whether an account number is already taken.
	// Used by the identifier generator's rejection sampling; the unique
	// constraint on the column remains the authority.
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveUserWithAccount persists a new user and their account as one unit
	// of work. Returns apperrors.ErrDuplicateUser on username collision and
	// apperrors.ErrDuplicate on account number collision.
	SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error

	// DeactivateAccount marks an account inactive, blocking further debits.
	DeactivateAccount(ctx context.Context, accountNumber string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
