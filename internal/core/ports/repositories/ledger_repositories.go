package repositories

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// LedgerReader defines read operations on the append-only ledger
type LedgerReader interface {
	// ListEntriesByUserID returns a user's entries newest first, using token-based pagination.
	ListEntriesByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindEntriesByReferenceID returns the entries created for a request (at most one in practice).
	FindEntriesByReferenceID(ctx context.Context, referenceID string) ([]domain.LedgerEntry, error)
}

// LedgerTransactionSupport defines ledger writes. Entries are only ever inserted.
type LedgerTransactionSupport interface {
	InsertEntryInTx(ctx context.Context, tx Tx, entry domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerTransactionSupport
}
