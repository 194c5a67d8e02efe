package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// SessionService opens per-user read sessions.
type SessionService struct {
	storage    *storage.Storage
	categories *CategoryService
	now        func() time.Time
}

func NewSessionService(store *storage.Storage, categories *CategoryService, now func() time.Time) *SessionService {
	return &SessionService{storage: store, categories: categories, now: now}
}

// WithClock overrides the clock that anchors periods.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

// Session is the explicit per-user context that read operations run against.
// It caches the user's transactions and catalog until Refresh is called.
type Session struct {
	Identity auth.Identity

	service *SessionService

	mu           sync.RWMutex
	transactions []ledger.Transaction
	catalog      ledger.Catalog
	criteria     ledger.Criteria
}

// Open loads the user's transactions and catalog concurrently. Read paths
// never fail: a store error leaves the session with no transactions. The
// initial criteria select the current month.
func (s *SessionService) Open(ctx context.Context, scope auth.Identity) *Session {
	session := &Session{
		Identity: scope,
		service:  s,
		criteria: ledger.Criteria{
			Type:     ledger.All,
			Category: ledger.All,
			Month:    ledger.DateOf(s.now()).MonthKey(),
		},
	}
	session.Refresh(ctx)
	return session
}

// Refresh reloads the cached lists from the store.
func (s *Session) Refresh(ctx context.Context) {
	var (
		transactions []ledger.Transaction
		catalog      ledger.Catalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.service.storage.Transactions.List(gctx, s.Identity.UserID)
		if err != nil {
			logrus.WithError(err).WithField("userID", s.Identity.UserID).Warn("Service.Session.ListTransactions")
			transactions = []ledger.Transaction{}
			return nil
		}
		transactions = toLedger(rows)
		return nil
	})
	g.Go(func() error {
		catalog = s.service.categories.Catalog(gctx, s.Identity.UserID)
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = transactions
	s.catalog = catalog
}

// Transactions returns the cached list, newest first.
func (s *Session) Transactions() []ledger.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.SortByDateDesc(s.transactions)
}

func (s *Session) Catalog() ledger.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Category resolves a category id, falling back to the placeholder.
func (s *Session) Category(t ledger.TransactionType, id string) ledger.Category {
	return s.Catalog().Resolve(t, id)
}

// SetFilter replaces the session's current criteria.
func (s *Session) SetFilter(c ledger.Criteria) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	return nil
}

// Filtered applies the current criteria to the cached list.
func (s *Session) Filtered() []ledger.Transaction {
	s.mu.RLock()
	c := s.criteria
	s.mu.RUnlock()
	return ledger.Filter(s.Transactions(), c)
}

// Filter validates c and applies it without changing the current criteria.
func (s *Session) Filter(c ledger.Criteria) ([]ledger.Transaction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return ledger.Filter(s.Transactions(), c), nil
}

func (s *Session) Stats(p ledger.Period) ledger.Stats {
	return ledger.Aggregate(s.Transactions(), p, s.service.now())
}

func (s *Session) Recent(n int) []ledger.Transaction {
	return ledger.Recent(s.Transactions(), n)
}

func (s *Session) Trend(p ledger.Period) []ledger.DailyTotal {
	return ledger.Trend(s.Transactions(), p, s.service.now())
}

// Breakdown returns the period's expense categories, largest first.
func (s *Session) Breakdown(p ledger.Period) []ledger.CategoryTotal {
	return ledger.Breakdown(s.Stats(p), s.Catalog())
}
