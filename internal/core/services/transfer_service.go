package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashg/cashg-ledger/internal/apperrors"
	"github.com/cashg/cashg-ledger/internal/core/domain"
	portsrepo "github.com/cashg/cashg-ledger/internal/core/ports/repositories"
	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
	"github.com/cashg/cashg-ledger/internal/dto"
	"github.com/cashg/cashg-ledger/internal/middleware"
	"github.com/cashg/cashg-ledger/internal/utils/money"
)

// transferService orchestrates atomic two-account transfers: pre-validation
// and record construction happen here, while the repository executes the
// whole unit (locks, re-validation, balance updates, three inserts) in one
// database transaction.
type transferService struct {
	userRepo     portsrepo.UserRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	transferRepo portsrepo.TransferRepositoryFacade
	identifiers  portssvc.IdentifierSvcFacade
}

// NewTransferService creates a new TransferService.
func NewTransferService(userRepo portsrepo.UserRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, transferRepo portsrepo.TransferRepositoryFacade, identifiers portssvc.IdentifierSvcFacade) portssvc.TransferSvcFacade {
	return &transferService{
		userRepo:     userRepo,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		identifiers:  identifiers,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves money from the caller's account to the recipient resolved
// by username. Failure at any step leaves both balances and the ledger
// untouched.
func (s *transferService) Transfer(ctx context.Context, senderUserID string, req dto.CreateTransferRequest) (*domain.Transfer, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount, err := money.ParsePositive(req.Amount)
	if err != nil {
		return nil, nil, err
	}

	sender, err := s.userRepo.FindUserByID(ctx, senderUserID)
	if err != nil {
		return nil, nil, err
	}
	senderAccount, err := s.accountRepo.FindAccountByUserID(ctx, senderUserID)
	if err != nil {
		return nil, nil, err
	}

	recipient, err := s.userRepo.FindUserByUsername(ctx, req.Recipient)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: no user named %q", apperrors.ErrRecipientNotFound, req.Recipient)
		}
		return nil, nil, err
	}
	recipientAccount, err := s.accountRepo.FindAccountByUserID(ctx, recipient.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: user %q has no account", apperrors.ErrRecipientNotFound, req.Recipient)
		}
		return nil, nil, err
	}

	if sender.UserID == recipient.UserID {
		return nil, nil, apperrors.ErrSelfTransfer
	}

	// Pre-checks outside the lock; the repository repeats them under it.
	if !senderAccount.IsActive {
		return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, senderAccount.AccountNumber)
	}
	if amount.GreaterThan(senderAccount.Balance) {
		return nil, nil, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientFunds, senderAccount.Balance, amount)
	}
	if !money.WithinMovementBand(amount) {
		return nil, nil, fmt.Errorf("%w: transfer must be between %s and %s", apperrors.ErrAmountOutOfRange, money.MovementMin, money.MovementMax)
	}

	transferID, err := s.identifiers.TransferID(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate transfer ID: %w", err)
	}
	debitRef, err := s.identifiers.ReferenceNumber(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate debit reference: %w", err)
	}
	creditRef, err := s.identifiers.ReferenceNumber(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate credit reference: %w", err)
	}

	now := time.Now().UTC()
	debit := domain.Transaction{
		ReferenceNumber: debitRef,
		AccountNumber:   senderAccount.AccountNumber,
		TransactionType: domain.TransferOut,
		Amount:          amount,
		Description:     counterpartyDescription("Transfer to", recipient.Username, req.Note),
		CreatedAt:       now,
	}
	credit := domain.Transaction{
		ReferenceNumber: creditRef,
		AccountNumber:   recipientAccount.AccountNumber,
		TransactionType: domain.Received,
		Amount:          amount,
		Description:     counterpartyDescription("Transfer from", sender.Username, req.Note),
		CreatedAt:       now,
	}
	transfer := domain.Transfer{
		TransferID:       transferID,
		SenderAccount:    senderAccount.AccountNumber,
		RecipientAccount: recipientAccount.AccountNumber,
		Amount:           amount,
		Note:             req.Note,
		Status:           domain.TransferCompleted,
		DebitReference:   debitRef,
		CreditReference:  creditRef,
		CreatedAt:        now,
	}

	updatedSender, err := s.transferRepo.SaveTransfer(ctx, transfer, debit, credit)
	if err != nil {
		logger.Warn("Transfer failed",
			slog.String("transfer_id", transferID),
			slog.String("sender_account", senderAccount.AccountNumber),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	logger.Info("Transfer completed",
		slog.String("transfer_id", transferID),
		slog.String("sender_account", senderAccount.AccountNumber),
		slog.String("recipient_account", recipientAccount.AccountNumber),
		slog.String("amount", amount.String()),
	)
	return &transfer, updatedSender, nil
}

// counterpartyDescription derives the ledger entry text referencing the
// other party, with the caller's note appended when present.
func counterpartyDescription(direction, username, note string) string {
	if note == "" {
		return fmt.Sprintf("%s %s", direction, username)
	}
	return fmt.Sprintf("%s %s: %s", direction, username, note)
}
