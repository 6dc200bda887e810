package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus indicates the state of a transfer record.
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferFailed    TransferStatus = "FAILED"
)

// Transfer records the pairing of the two ledger entries caused by moving
// money between two accounts. It is a higher-level audit record, not itself
// a balance mutation; it is only ever written together with its two linked
// Transaction rows in one unit of work.
type Transfer struct {
	TransferID       string          `json:"transferID"` // Primary Key, generated (TRF-...)
	SenderAccount    string          `json:"senderAccount"`
	RecipientAccount string          `json:"recipientAccount"`
	Amount           decimal.Decimal `json:"amount"`
	Note             string          `json:"note"`
	Status           TransferStatus  `json:"status"`
	DebitReference   string          `json:"debitReference"`  // FK -> sender's TRANSFER entry
	CreditReference  string          `json:"creditReference"` // FK -> recipient's RECEIVED entry
	CreatedAt        time.Time       `json:"createdAt"`
}
