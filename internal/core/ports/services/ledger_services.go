package services

import (
	"context"

	"github.com/cashg/cashg-ledger/internal/core/domain"
)

// LedgerSvcFacade exposes the single-account ledger operations.
type LedgerSvcFacade interface {
	// Deposit credits the caller's account with the parsed amount and
	// records a DEPOSIT ledger entry.
	Deposit(ctx context.Context, userID string, amount string) (*domain.Account, error)

	// Withdraw debits the caller's account and records a WITHDRAWAL entry.
	// The amount must lie within the movement band and not exceed the
	// balance; inactive accounts cannot withdraw.
	Withdraw(ctx context.Context, userID string, amount string) (*domain.Account, error)

	// History returns the caller's ledger entries, newest first, capped at
	// limit (a non-positive limit selects the default page size).
	History(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}
