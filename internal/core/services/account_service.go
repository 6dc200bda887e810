package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashg/cashg-ledger/internal/apperrors"
	"github.com/cashg/cashg-ledger/internal/core/domain"
	portsrepo "github.com/cashg/cashg-ledger/internal/core/ports/repositories"
	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
	"github.com/cashg/cashg-ledger/internal/dto"
	"github.com/cashg/cashg-ledger/internal/middleware"
)

// accountService provides account lifecycle operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	identifiers portssvc.IdentifierSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, identifiers portssvc.IdentifierSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		identifiers: identifiers,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// OpenAccount creates a user identity and their account with a zero balance
// as one unit of work. The account number is generated and immutable.
func (s *accountService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	accountNumber, err := s.identifiers.AccountNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:   uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	account := domain.Account{
		AccountNumber: accountNumber,
		UserID:        user.UserID,
		AccountType:   req.AccountType,
		Balance:       decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveUserWithAccount(ctx, user, account); err != nil {
		logger.Warn("Failed to open account", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account opened",
		slog.String("user_id", user.UserID),
		slog.String("account_number", account.AccountNumber),
		slog.String("account_type", string(account.AccountType)),
	)
	return &account, nil
}

// GetAccountForUser returns the account owned by the given identity.
func (s *accountService) GetAccountForUser(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// DeactivateAccount blocks further debits on the caller's account.
func (s *accountService) DeactivateAccount(ctx context.Context, userID string) error {
	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, account.AccountNumber, time.Now().UTC()); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Account deactivated", slog.String("account_number", account.AccountNumber))
	return nil
}
