package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
)

var errTxDone = fmt.Errorf("%w: memory: transaction already committed or rolled back", apperrors.ErrInternal)

// Store is an in-memory implementation of every repository port.
// Committed state is guarded by mu. Row locks taken by FindXxxForUpdate are held by the
// owning transaction until Commit or Rollback, mirroring SELECT ... FOR UPDATE.
type Store struct {
	mu          sync.RWMutex
	users       map[string]domain.User
	wallets     map[string]domain.WalletAccount
	requests    map[string]domain.MonetaryRequest
	recruits    map[string]domain.PendingRecruit
	entries     []domain.LedgerEntry
	entryRefs   map[string]struct{}
	idempotency map[string]domain.IdempotentResponse

	locksMu sync.Mutex
	locks   map[string]chan struct{} // one-slot channel per row, so acquisition can honour ctx
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:       make(map[string]domain.User),
		wallets:     make(map[string]domain.WalletAccount),
		requests:    make(map[string]domain.MonetaryRequest),
		recruits:    make(map[string]domain.PendingRecruit),
		entryRefs:   make(map[string]struct{}),
		idempotency: make(map[string]domain.IdempotentResponse),
		locks:       make(map[string]chan struct{}),
	}
}

// Provider exposes the store through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       s,
		UserRepo:        s,
		WalletRepo:      s,
		RequestRepo:     s,
		LedgerRepo:      s,
		RecruitRepo:     s,
		ReportingRepo:   s,
		IdempotencyRepo: s,
	}
}

func (s *Store) lockRow(ctx context.Context, key string) (func(), error) {
	s.locksMu.Lock()
	ch, ok := s.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[key] = ch
	}
	s.locksMu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for lock on %s: %w", key, ctx.Err())
	}
}

// memTx stages writes and holds row locks until it ends.
type memTx struct {
	store    *Store
	held     map[string]func()
	users    map[string]domain.User
	wallets  map[string]domain.WalletAccount
	requests map[string]domain.MonetaryRequest
	recruits map[string]domain.PendingRecruit
	entries  []domain.LedgerEntry
	done     bool
}

func (t *memTx) lock(ctx context.Context, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}
	release, err := t.store.lockRow(ctx, key)
	if err != nil {
		return err
	}
	t.held[key] = release
	return nil
}

func (t *memTx) release() {
	for key, release := range t.held {
		release()
		delete(t.held, key)
	}
}

// Commit applies staged writes atomically and releases row locks.
func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	s := t.store
	s.mu.Lock()
	for id, u := range t.users {
		s.users[id] = u
	}
	for id, w := range t.wallets {
		s.wallets[id] = w
	}
	for id, r := range t.requests {
		s.requests[id] = r
	}
	for id, r := range t.recruits {
		s.recruits[id] = r
	}
	for _, e := range t.entries {
		s.entries = append(s.entries, e)
		if e.ReferenceID != nil {
			s.entryRefs[*e.ReferenceID] = struct{}{}
		}
	}
	s.mu.Unlock()

	t.done = true
	t.release()
	return nil
}

// Rollback discards staged writes. It is a no-op once the transaction has ended.
func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.release()
	return nil
}

// Begin starts a new transaction.
func (s *Store) Begin(ctx context.Context) (portsrepo.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memTx{
		store:    s,
		held:     make(map[string]func()),
		users:    make(map[string]domain.User),
		wallets:  make(map[string]domain.WalletAccount),
		requests: make(map[string]domain.MonetaryRequest),
		recruits: make(map[string]domain.PendingRecruit),
	}, nil
}

// Commit commits tx.
func (s *Store) Commit(ctx context.Context, tx portsrepo.Tx) error {
	return tx.Commit(ctx)
}

// Rollback rolls tx back.
func (s *Store) Rollback(ctx context.Context, tx portsrepo.Tx) error {
	return tx.Rollback(ctx)
}

func (s *Store) asTx(tx portsrepo.Tx) (*memTx, error) {
	mt, ok := tx.(*memTx)
	if !ok || mt.store != s {
		return nil, fmt.Errorf("%w: memory: foreign transaction %T", apperrors.ErrInternal, tx)
	}
	if mt.done {
		return nil, errTxDone
	}
	return mt, nil
}

var (
	_ portsrepo.TransactionManager      = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade    = (*Store)(nil)
	_ portsrepo.WalletRepositoryFacade  = (*Store)(nil)
	_ portsrepo.RequestRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade  = (*Store)(nil)
	_ portsrepo.RecruitRepositoryFacade = (*Store)(nil)
	_ portsrepo.ReportingRepository     = (*Store)(nil)
	_ portsrepo.IdempotencyRepository   = (*Store)(nil)
)
