package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-tracker/internal/storage"
)

// Backend hands out the same mocked tables inside and outside transactions
// and counts how transactions end.
type Backend struct {
	Reader   storage.Reader
	BeginErr error

	CommitErr error

	mu        sync.Mutex
	commits   int
	rollbacks int
}

var _ storage.Backend = (*Backend)(nil)

func (b *Backend) Tables() storage.Reader {
	return b.Reader
}

func (b *Backend) Begin(_ context.Context) (storage.Tx, storage.Reader, error) {
	if b.BeginErr != nil {
		return nil, storage.Reader{}, b.BeginErr
	}
	return &fakeTx{backend: b}, b.Reader, nil
}

func (b *Backend) Close() error {
	return nil
}

func (b *Backend) Commits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commits
}

func (b *Backend) Rollbacks() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rollbacks
}

type fakeTx struct {
	backend *Backend
	done    bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	t.done = true
	if t.backend.CommitErr != nil {
		return t.backend.CommitErr
	}
	t.backend.commits++
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	t.backend.rollbacks++
	return nil
}

// Tables bundles the mocks behind a Storage built by NewStorage.
type Tables struct {
	Accounts     *MockIAccountTable
	Categories   *MockICategoryTable
	Transactions *MockITransactionTable
	Backend      *Backend
}

// NewStorage returns a Storage whose every table is a fresh mock.
func NewStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) (*storage.Storage, *Tables) {
	tables := &Tables{
		Accounts:     NewMockIAccountTable(t),
		Categories:   NewMockICategoryTable(t),
		Transactions: NewMockITransactionTable(t),
	}
	tables.Backend = &Backend{Reader: storage.Reader{
		Accounts:     tables.Accounts,
		Categories:   tables.Categories,
		Transactions: tables.Transactions,
	}}
	return storage.New(tables.Backend), tables
}
