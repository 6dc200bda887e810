package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashg/cashg-ledger/internal/apperrors"
	"github.com/cashg/cashg-ledger/internal/core/domain"
	portsrepo "github.com/cashg/cashg-ledger/internal/core/ports/repositories"
	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
	"github.com/cashg/cashg-ledger/internal/middleware"
	"github.com/cashg/cashg-ledger/internal/utils/money"
)

// defaultHistoryLimit applies when the caller does not cap the page size.
const defaultHistoryLimit = 20

// ledgerService provides the single-account ledger operations: deposits,
// withdrawals and history. Every mutation is one unit of work in the
// repository: load under lock, validate, mutate, append, commit.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	identifiers portssvc.IdentifierSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, identifiers portssvc.IdentifierSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		identifiers: identifiers,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Deposit credits the caller's account. The amount must be at least the
// minimum deposit; deposits are allowed on inactive accounts.
func (s *ledgerService) Deposit(ctx context.Context, userID string, amount string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parsed, err := money.ParsePositive(amount)
	if err != nil {
		return nil, err
	}
	if parsed.LessThan(money.MinDeposit) {
		return nil, fmt.Errorf("%w: deposit must be at least %s", apperrors.ErrInvalidAmount, money.MinDeposit)
	}

	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	txn, err := s.record(ctx, account.AccountNumber, domain.Deposit, parsed, "Cash deposit")
	if err != nil {
		return nil, err
	}

	updated, err := s.ledgerRepo.SaveTransaction(ctx, txn, parsed)
	if err != nil {
		return nil, err
	}

	logger.Info("Deposit recorded",
		slog.String("account_number", account.AccountNumber),
		slog.String("reference_number", txn.ReferenceNumber),
		slog.String("amount", parsed.String()),
	)
	return updated, nil
}

// Withdraw debits the caller's account. Insufficient funds is reported
// before the movement band check when both would fail; the repository
// re-checks the balance under the row lock.
func (s *ledgerService) Withdraw(ctx context.Context, userID string, amount string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parsed, err := money.ParsePositive(amount)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, account.AccountNumber)
	}
	if parsed.GreaterThan(account.Balance) {
		return nil, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientFunds, account.Balance, parsed)
	}
	if !money.WithinMovementBand(parsed) {
		return nil, fmt.Errorf("%w: withdrawal must be between %s and %s", apperrors.ErrAmountOutOfRange, money.MovementMin, money.MovementMax)
	}

	txn, err := s.record(ctx, account.AccountNumber, domain.Withdrawal, parsed, "Cash withdrawal")
	if err != nil {
		return nil, err
	}

	updated, err := s.ledgerRepo.SaveTransaction(ctx, txn, parsed.Neg())
	if err != nil {
		return nil, err
	}

	logger.Info("Withdrawal recorded",
		slog.String("account_number", account.AccountNumber),
		slog.String("reference_number", txn.ReferenceNumber),
		slog.String("amount", parsed.String()),
	)
	return updated, nil
}

// History returns the caller's ledger entries, newest first.
func (s *ledgerService) History(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.ledgerRepo.ListTransactionsByAccount(ctx, account.AccountNumber, limit)
}

// record builds a ledger entry: positive-amount invariant (enforced here
// even though callers pre-validate), generated reference number, creation
// timestamp. The entry is not persisted until the repository commits it
// together with the balance change.
func (s *ledgerService) record(ctx context.Context, accountNumber string, txnType domain.TransactionType, amount decimal.Decimal, description string) (domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Transaction{}, fmt.Errorf("%w: ledger amounts must be strictly positive", apperrors.ErrInvalidAmount)
	}
	ref, err := s.identifiers.ReferenceNumber(ctx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to generate reference number: %w", err)
	}
	return domain.Transaction{
		ReferenceNumber: ref,
		AccountNumber:   accountNumber,
		TransactionType: txnType,
		Amount:          amount,
		Description:     description,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
