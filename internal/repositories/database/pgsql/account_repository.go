package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cashg/cashg-ledger/internal/apperrors"
	"github.com/cashg/cashg-ledger/internal/core/domain"
	portsrepo "github.com/cashg/cashg-ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_number, user_id, account_type, balance, is_active, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountNumber,
		&acc.UserID,
		&acc.AccountType,
		&acc.Balance,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// SaveUserWithAccount inserts the user and their account in one database
// transaction, mirroring the atomic signup the account lifecycle requires.
func (r *PgxAccountRepository) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed.

	userQuery := `
		INSERT INTO users (user_id, username, email, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, userQuery,
		user.UserID,
		user.Username,
		user.Email,
		user.CreatedAt,
		user.LastUpdatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicateUser, user.Username)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}

	accountQuery := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, accountQuery,
		account.AccountNumber,
		account.UserID,
		account.AccountType,
		account.Balance,
		account.IsActive,
		account.CreatedAt,
		account.LastUpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			// Account number collision slipped past the generator; the caller
			// may retry with a fresh number.
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, account.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountNumber, err)
	}

	return r.Commit(ctx, tx)
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}
	return acc, nil
}

// FindAccountByUserID retrieves the single account owned by a user.
func (r *PgxAccountRepository) FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account for user %s: %w", userID, err)
	}
	return acc, nil
}

// AccountNumberExists reports whether an account number is already taken.
func (r *PgxAccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`
	if err := r.Pool.QueryRow(ctx, query, accountNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account number %s: %w", accountNumber, err)
	}
	return exists, nil
}

// DeactivateAccount marks an account as inactive. Already-inactive accounts
// are reported as a validation error, missing accounts as not found.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountNumber string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2
		WHERE account_number = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountNumber, now)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindAccountByNumber(ctx, accountNumber); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, accountNumber)
	}
	return nil
}

// findAccountsForUpdate selects the given account rows inside tx and locks
// them FOR UPDATE in account-number order. Locking in one ordered statement
// keeps the acquisition order deterministic regardless of transfer
// direction, which prevents lock-ordering deadlocks.
func findAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []string) (map[string]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = ANY($1)
		ORDER BY account_number
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountNumbers)
	if err != nil {
		return nil, mapLockError(err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountNumbers))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[acc.AccountNumber] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, mapLockError(err)
	}

	if len(accounts) != len(accountNumbers) {
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts", apperrors.ErrNotFound)
	}
	return accounts, nil
}

// applyBalanceChange applies delta to one locked account row inside tx and
// returns the updated account.
func applyBalanceChange(ctx context.Context, tx pgx.Tx, accountNumber string, delta decimal.Decimal, now time.Time) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE account_number = $1
		RETURNING ` + accountColumns + `;
	`
	acc, err := scanAccount(tx.QueryRow(ctx, query, accountNumber, delta, now))
	if err != nil {
		return nil, fmt.Errorf("failed to update balance for account %s: %w", accountNumber, err)
	}
	return acc, nil
}
