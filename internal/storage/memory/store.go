package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

var _ storage.Backend = (*Store)(nil)

var errTxDone = errors.New("memory: transaction already finished")

type state struct {
	Accounts     map[uuid.UUID]account.Account                           `json:"accounts"`
	Transactions map[uuid.UUID]map[uuid.UUID]transaction.Transaction `json:"transactions"`
	Categories   map[uuid.UUID]ledger.Catalog                            `json:"categories"`
}

func newState() *state {
	return &state{
		Accounts:     map[uuid.UUID]account.Account{},
		Transactions: map[uuid.UUID]map[uuid.UUID]transaction.Transaction{},
		Categories:   map[uuid.UUID]ledger.Catalog{},
	}
}

func (s *state) clone() *state {
	out := newState()
	for id, a := range s.Accounts {
		out.Accounts[id] = a
	}
	for userID, txs := range s.Transactions {
		copied := make(map[uuid.UUID]transaction.Transaction, len(txs))
		for id, t := range txs {
			copied[id] = t
		}
		out.Transactions[userID] = copied
	}
	for userID, c := range s.Categories {
		out.Categories[userID] = copyCatalog(c)
	}
	return out
}

func copyCatalog(c ledger.Catalog) ledger.Catalog {
	return ledger.Catalog{
		Expense: append([]ledger.Category(nil), c.Expense...),
		Income:  append([]ledger.Category(nil), c.Income...),
	}
}

// Store is an in-process backend. Writers are serialised; each works on a
// private copy of the data that replaces the shared copy on commit. When a
// path is set the data is written to it as JSON on every commit.
type Store struct {
	writeMu sync.Mutex

	mu      sync.RWMutex
	current *state

	path string
}

// New returns an empty store that lives only in memory.
func New() *Store {
	return &Store{current: newState()}
}

// Open returns a store persisted to path, loading it when the file exists.
func Open(path string) (*Store, error) {
	s := &Store{current: newState(), path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	loaded := newState()
	if err := json.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	s.current = loaded.clone()
	return s, nil
}

func (s *Store) Tables() storage.Reader {
	return tablesFor(autoCommit{store: s})
}

func (s *Store) Begin(ctx context.Context) (storage.Tx, storage.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Reader{}, err
	}
	s.writeMu.Lock()
	s.mu.RLock()
	tx := &memTx{store: s, working: s.current.clone()}
	s.mu.RUnlock()
	return tx, tablesFor(tx), nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// publish persists next and makes it the shared state. Caller holds writeMu.
func (s *Store) publish(next *state) error {
	if err := s.persist(next); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return nil
}

func (s *Store) persist(st *state) error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// access is how tables reach the data: directly inside a transaction, or
// through a one-shot transaction otherwise.
type access interface {
	view(fn func(st *state) error) error
	update(fn func(st *state) error) error
}

type autoCommit struct {
	store *Store
}

func (a autoCommit) view(fn func(st *state) error) error {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.current)
}

func (a autoCommit) update(fn func(st *state) error) error {
	a.store.writeMu.Lock()
	defer a.store.writeMu.Unlock()
	next := a.store.snapshot().clone()
	if err := fn(next); err != nil {
		return err
	}
	return a.store.publish(next)
}

type memTx struct {
	store   *Store
	working *state
	done    bool
}

func (t *memTx) view(fn func(st *state) error) error {
	if t.done {
		return errTxDone
	}
	return fn(t.working)
}

func (t *memTx) update(fn func(st *state) error) error {
	if t.done {
		return errTxDone
	}
	return fn(t.working)
}

func (t *memTx) Commit(_ context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	defer t.store.writeMu.Unlock()
	return t.store.publish(t.working)
}

// Rollback discards the working copy. It is a no-op after Commit.
func (t *memTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.writeMu.Unlock()
	return nil
}
