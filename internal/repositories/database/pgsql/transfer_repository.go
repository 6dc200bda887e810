package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cashg/cashg-ledger/internal/apperrors"
	"github.com/cashg/cashg-ledger/internal/core/domain"
	portsrepo "github.com/cashg/cashg-ledger/internal/core/ports/repositories"
	"github.com/cashg/cashg-ledger/internal/utils/money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for transfer records.
func newPgxTransferRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout},
	}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

const transferColumns = `transfer_id, sender_account, recipient_account, amount, note, status, debit_reference, credit_reference, created_at`

// SaveTransfer executes the whole transfer as one database transaction:
// lock both account rows in account-number order, re-validate under the
// locks, apply both balance changes, append the paired ledger entries and
// the transfer record. Any failure rolls everything back; the caller
// observes no balance change and no new ledger rows.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer, debit domain.Transaction, credit domain.Transaction) (*domain.Account, error) {
	if transfer.SenderAccount == transfer.RecipientAccount {
		return nil, apperrors.ErrSelfTransfer
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed.

	locked, err := findAccountsForUpdate(ctx, tx, []string{transfer.SenderAccount, transfer.RecipientAccount})
	if err != nil {
		return nil, err
	}
	sender := locked[transfer.SenderAccount]

	// The pre-checks ran outside the lock; repeat them now that the rows
	// cannot change underneath us.
	if !money.WithinMovementBand(transfer.Amount) {
		return nil, fmt.Errorf("%w: transfer must be between %s and %s", apperrors.ErrAmountOutOfRange, money.MovementMin, money.MovementMax)
	}
	if !sender.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, sender.AccountNumber)
	}
	if transfer.Amount.GreaterThan(sender.Balance) {
		return nil, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientFunds, sender.Balance, transfer.Amount)
	}

	updatedSender, err := applyBalanceChange(ctx, tx, transfer.SenderAccount, transfer.Amount.Neg(), transfer.CreatedAt)
	if err != nil {
		return nil, err
	}
	if _, err := applyBalanceChange(ctx, tx, transfer.RecipientAccount, transfer.Amount, transfer.CreatedAt); err != nil {
		return nil, err
	}

	if err := insertTransaction(ctx, tx, debit); err != nil {
		return nil, err
	}
	if err := insertTransaction(ctx, tx, credit); err != nil {
		return nil, err
	}

	transferQuery := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := tx.Exec(ctx, transferQuery,
		transfer.TransferID,
		transfer.SenderAccount,
		transfer.RecipientAccount,
		transfer.Amount,
		transfer.Note,
		transfer.Status,
		transfer.DebitReference,
		transfer.CreditReference,
		transfer.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: transfer ID %s already exists", apperrors.ErrDuplicate, transfer.TransferID)
		}
		return nil, fmt.Errorf("failed to insert transfer %s: %w", transfer.TransferID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updatedSender, nil
}

// FindTransferByID retrieves a transfer record by its transfer ID.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1;`
	var t domain.Transfer
	err := r.Pool.QueryRow(ctx, query, transferID).Scan(
		&t.TransferID,
		&t.SenderAccount,
		&t.RecipientAccount,
		&t.Amount,
		&t.Note,
		&t.Status,
		&t.DebitReference,
		&t.CreditReference,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	return &t, nil
}

// TransferIDExists reports whether a transfer ID is already taken.
func (r *PgxTransferRepository) TransferIDExists(ctx context.Context, transferID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM transfers WHERE transfer_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, transferID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check transfer ID %s: %w", transferID, err)
	}
	return exists, nil
}
