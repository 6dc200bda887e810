package pgsql

import (
	"time"

	portsrepo "github.com/cashg/cashg-ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx repositories against one pool. The
// lock timeout bounds every FOR UPDATE acquisition so contention surfaces
// as apperrors.ErrBusy.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(dbPool),
		AccountRepo:  newPgxAccountRepository(dbPool, lockTimeout),
		LedgerRepo:   newPgxLedgerRepository(dbPool, lockTimeout),
		TransferRepo: newPgxTransferRepository(dbPool, lockTimeout),
	}
}
