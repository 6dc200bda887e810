package repositories

import (
	"context"

	"github.com/cashg/cashg-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for the transaction ledger.
type LedgerReader interface {
	// ListTransactionsByAccount retrieves up to limit ledger entries for an
	// account, newest first.
	ListTransactionsByAccount(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error)

	// ReferenceNumberExists reports whether a transaction reference number is
	// already taken.
	ReferenceNumberExists(ctx context.Context, referenceNumber string) (bool, error)
}

// LedgerWriter defines the single-account unit of work: lock the account row,
// apply the balance delta, append the ledger entry, commit.
type LedgerWriter interface {
	// SaveTransaction appends txn and applies delta to the owning account's
	// balance inside one database transaction. The account row is locked for
	// the duration; a negative delta is re-validated under the lock
	// (apperrors.ErrInsufficientFunds, apperrors.ErrAccountInactive). Lock
	// contention beyond the configured timeout returns apperrors.ErrBusy.
	// Returns the updated account.
	SaveTransaction(ctx context.Context, txn domain.Transaction, delta decimal.Decimal) (*domain.Account, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
