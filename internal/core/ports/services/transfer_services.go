package services

import (
	"context"

	"github.com/cashg/cashg-ledger/internal/core/domain"
	"github.com/cashg/cashg-ledger/internal/dto"
)

// TransferSvcFacade exposes the two-account transfer operation.
type TransferSvcFacade interface {
	// Transfer moves money from the caller's account to the recipient
	// (resolved by username) as one atomic unit: two balance updates, two
	// ledger entries and the transfer record commit together or not at all.
	// Returns the completed transfer record and the updated sender account.
	Transfer(ctx context.Context, senderUserID string, req dto.CreateTransferRequest) (*domain.Transfer, *domain.Account, error)
}
