package repositories

import (
	"context"

	"github.com/cashg/cashg-ledger/internal/core/domain"
)

// TransferReader defines read operations for transfer records.
type TransferReader interface {
	// FindTransferByID retrieves a transfer record by its transfer ID.
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// TransferIDExists reports whether a transfer ID is already taken.
	TransferIDExists(ctx context.Context, transferID string) (bool, error)
}

// TransferWriter defines the two-account unit of work behind a transfer.
type TransferWriter interface {
	// SaveTransfer executes the transfer atomically: both account rows are
	// locked in account-number order, the amount band, sender balance and
	// sender active flag are re-validated under the locks, both balances are
	// updated, the debit and credit ledger entries are appended and the
	// transfer record is written — all in one database transaction. Any
	// failure rolls the whole unit back. Returns the updated sender account.
	SaveTransfer(ctx context.Context, transfer domain.Transfer, debit domain.Transaction, credit domain.Transaction) (*domain.Account, error)
}

// TransferRepositoryFacade combines all transfer repository interfaces.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}
