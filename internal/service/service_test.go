package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/events"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/memory"
)

var march10 = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return march10 }

type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.ChangeEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event *events.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Actions() []events.Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Action, len(p.events))
	for i, e := range p.events {
		out[i] = e.Action
	}
	return out
}

type processorFunc func(ctx context.Context, action actions.IAction) error

func (f processorFunc) Process(ctx context.Context, action actions.IAction) error {
	return f(ctx, action)
}

var errStoreDown = errors.New("connection refused")

func failingProcessor(context.Context, actions.IAction) error { return errStoreDown }

type testEnv struct {
	svc       *Service
	store     *storage.Storage
	publisher *recordingPublisher
	user      auth.Identity
}

// newTestEnv wires the service over an in-memory store with one registered user.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := storage.New(memory.New())
	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	publisher := &recordingPublisher{}
	svc := NewService(store, delegator, publisher)
	svc.Session.now = fixedNow
	svc.Data.now = fixedNow

	register := &actions.RegisterAccount{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, delegator.Process(context.Background(), register))

	return &testEnv{
		svc:       svc,
		store:     store,
		publisher: publisher,
		user:      auth.Identity{UserID: register.ID, Username: "alice"},
	}
}

func (e *testEnv) add(t *testing.T, p Payload) Result {
	t.Helper()
	res := e.svc.Transaction.Add(context.Background(), e.user, p)
	require.True(t, res.OK(), res.Message)
	return res
}

func expensePayload(amount, category, date string) Payload {
	return Payload{Type: "expense", Amount: amount, Category: category, Date: date}
}

func incomePayload(amount, category, date string) Payload {
	return Payload{Type: "income", Amount: amount, Category: category, Date: date}
}
