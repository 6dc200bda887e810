package dto

import (
	"time"

	"github.com/cashg/cashg-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest defines the data needed to open a new account. The
// identity arrives already validated in shape by the upstream signup flow;
// the engine still enforces uniqueness and kind validity.
type OpenAccountRequest struct {
	Username    string             `json:"username" binding:"required"`
	Email       string             `json:"email" binding:"omitempty,email"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=SAVINGS CHECKING"`
}

// AmountRequest carries a decimal amount string for deposits and withdrawals.
// The money format check at binding time is a convenience; the engine
// re-validates business rules on every path.
type AmountRequest struct {
	Amount string `json:"amount" binding:"required,money"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountNumber string             `json:"accountNumber"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}
