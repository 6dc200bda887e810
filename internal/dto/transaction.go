package dto

import (
	"time"

	"github.com/cashg/cashg-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for one ledger entry.
type TransactionResponse struct {
	ReferenceNumber string                 `json:"referenceNumber"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Amount          decimal.Decimal        `json:"amount"`
	Description     string                 `json:"description"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// ListTransactionsParams defines query parameters for the history listing.
type ListTransactionsParams struct {
	Limit int `form:"limit,default=0"`
}

// ListTransactionsResponse wraps a page of ledger entries, newest first.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ReferenceNumber: txn.ReferenceNumber,
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		Description:     txn.Description,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToListTransactionsResponse converts a slice of ledger entries.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	res := ListTransactionsResponse{Transactions: make([]TransactionResponse, len(txns))}
	for i, txn := range txns {
		res.Transactions[i] = ToTransactionResponse(txn)
	}
	return res
}
