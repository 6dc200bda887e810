package dto

import (
	"time"

	"github.com/cashg/cashg-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to transfer money to another
// user. The recipient is addressed by username, not account number.
type CreateTransferRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Amount    string `json:"amount" binding:"required,money"`
	Note      string `json:"note"`
}

// TransferResponse defines the data returned for a completed transfer,
// together with the sender's updated account snapshot.
type TransferResponse struct {
	TransferID       string                `json:"transferID"`
	RecipientAccount string                `json:"recipientAccount"`
	Amount           decimal.Decimal       `json:"amount"`
	Note             string                `json:"note"`
	Status           domain.TransferStatus `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
	SenderAccount    AccountResponse       `json:"senderAccount"`
}

// ToTransferResponse converts a completed transfer and the sender's updated
// account to the response DTO.
func ToTransferResponse(t *domain.Transfer, sender *domain.Account) TransferResponse {
	return TransferResponse{
		TransferID:       t.TransferID,
		RecipientAccount: t.RecipientAccount,
		Amount:           t.Amount,
		Note:             t.Note,
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
		SenderAccount:    ToAccountResponse(sender),
	}
}
