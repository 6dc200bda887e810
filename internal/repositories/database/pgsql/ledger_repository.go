package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/cashg/cashg-ledger/internal/apperrors"
	"github.com/cashg/cashg-ledger/internal/core/domain"
	portsrepo "github.com/cashg/cashg-ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the transaction ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const transactionColumns = `reference_number, account_number, transaction_type, amount, description, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.ReferenceNumber,
		&txn.AccountNumber,
		&txn.TransactionType,
		&txn.Amount,
		&txn.Description,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// insertTransaction appends one ledger entry inside tx.
func insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query,
		txn.ReferenceNumber,
		txn.AccountNumber,
		txn.TransactionType,
		txn.Amount,
		txn.Description,
		txn.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reference number %s already exists", apperrors.ErrDuplicate, txn.ReferenceNumber)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.ReferenceNumber, err)
	}
	return nil
}

// SaveTransaction applies a single-account unit of work: lock the account
// row, re-validate a debit under the lock, apply the balance delta and
// append the ledger entry, all in one database transaction.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta decimal.Decimal) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed.

	locked, err := findAccountsForUpdate(ctx, tx, []string{txn.AccountNumber})
	if err != nil {
		return nil, err
	}
	account := locked[txn.AccountNumber]

	if delta.IsNegative() {
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, account.AccountNumber)
		}
		if account.Balance.Add(delta).IsNegative() {
			return nil, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientFunds, account.Balance, delta.Neg())
		}
	}

	updated, err := applyBalanceChange(ctx, tx, txn.AccountNumber, delta, txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// ListTransactionsByAccount retrieves up to limit ledger entries for an
// account, newest first.
func (r *PgxLedgerRepository) ListTransactionsByAccount(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_number = $1
		ORDER BY created_at DESC, reference_number DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, accountNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountNumber, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountNumber, err)
	}
	return transactions, nil
}

// ReferenceNumberExists reports whether a reference number is already taken.
func (r *PgxLedgerRepository) ReferenceNumberExists(ctx context.Context, referenceNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE reference_number = $1);`
	if err := r.Pool.QueryRow(ctx, query, referenceNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check reference number %s: %w", referenceNumber, err)
	}
	return exists, nil
}
