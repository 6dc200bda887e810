package domain

import "github.com/shopspring/decimal"

// AccountType defines the kind of a bank account.
type AccountType string

const (
	Savings  AccountType = "SAVINGS"
	Checking AccountType = "CHECKING"
)

// Valid reports whether t is one of the known account kinds.
func (t AccountType) Valid() bool {
	return t == Savings || t == Checking
}

// Account represents a single-currency bank account. The account number is
// generated at creation, immutable and globally unique. Balance is only ever
// mutated by the ledger operations (deposit, withdraw, transfer), never
// directly.
type Account struct {
	AccountNumber string          `json:"accountNumber"` // Primary Key, formatted dddd-dddd-dddd
	UserID        string          `json:"userID"`        // FK -> User.userID (unique, 1:1)
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// CanWithdraw reports whether the account can cover a debit of amount.
// Inactive accounts can never be debited.
func (a Account) CanWithdraw(amount decimal.Decimal) bool {
	return a.IsActive && amount.LessThanOrEqual(a.Balance)
}
