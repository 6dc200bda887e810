package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a ledger entry with the kind of balance movement.
// Direction is encoded by the type, never by the sign of the amount.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	// TransferOut is the sender-side entry of a transfer; Received the recipient-side.
	TransferOut TransactionType = "TRANSFER"
	Received    TransactionType = "RECEIVED"
)

// IsDebit reports whether the type reduces the owning account's balance.
func (t TransactionType) IsDebit() bool {
	return t == Withdrawal || t == TransferOut
}

// Transaction is one immutable, append-only ledger entry documenting a single
// balance-affecting event. Amount is always strictly positive.
type Transaction struct {
	ReferenceNumber string          `json:"referenceNumber"` // Primary Key, generated (TXN-...)
	AccountNumber   string          `json:"accountNumber"`   // FK -> Account.accountNumber
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"createdAt"` // assigned at creation, immutable
}
