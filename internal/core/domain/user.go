package domain

// User represents an identity that owns exactly one account.
// Authentication happens upstream; the ledger only needs the identity itself.
type User struct {
	UserID   string `json:"userID"` // Primary Key (UUID)
	Username string `json:"username"`
	Email    string `json:"email"`
	AuditFields
}
