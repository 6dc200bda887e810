package repositories

import (
	"context"

	"github.com/cashg/cashg-ledger/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces.
// Users are only ever written together with their account, so the write
// path lives on AccountWriter.
type UserRepositoryFacade interface {
	UserReader
}
