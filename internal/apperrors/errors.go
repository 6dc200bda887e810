package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a malformed or non-positive monetary amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrAmountOutOfRange indicates an amount outside the permitted movement band.
var ErrAmountOutOfRange = errors.New("amount out of range")

// ErrInsufficientFunds indicates the account balance cannot cover the requested debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountInactive indicates a debit was attempted against a deactivated account.
var ErrAccountInactive = errors.New("account is inactive")

// ErrRecipientNotFound indicates the transfer recipient could not be resolved to an account.
var ErrRecipientNotFound = errors.New("recipient account not found")

// ErrSelfTransfer indicates sender and recipient are the same identity.
var ErrSelfTransfer = errors.New("cannot transfer to own account")

// ErrDuplicateUser indicates the username is already taken.
var ErrDuplicateUser = errors.New("user already exists")

// ErrIdentifierExhausted indicates identifier generation gave up after repeated collisions.
var ErrIdentifierExhausted = errors.New("identifier space exhausted")

// ErrBusy indicates a row lock could not be acquired within the configured
// timeout. The operation did not mutate anything and may be retried.
var ErrBusy = errors.New("resource busy, retry later")

// AppError wraps an unexpected lower-level failure (usually storage) with a
// status-like code and message. Business failures use the sentinel errors
// above instead.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
