package repositories

import (
	"context"
)

// Tx is a storage transaction handle. pgx.Tx satisfies it; the memory driver provides its own.
// Repository methods suffixed InTx / ForUpdate must be given a Tx from the same provider.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx Tx) error

	// Rollback rolls back a transaction. Rolling back a committed transaction is a no-op.
	Rollback(ctx context.Context, tx Tx) error
}
