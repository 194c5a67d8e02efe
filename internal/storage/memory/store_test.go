package memory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

func newUser(t *testing.T, store *storage.Storage, username string) uuid.UUID {
	t.Helper()
	id, err := store.Accounts.Insert(context.Background(), &account.AccountCreate{
		Username:     username,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return id
}

func insertTx(t *testing.T, table transaction.ITransactionTable, userID uuid.UUID, date ledger.Date, createdAt time.Time) uuid.UUID {
	t.Helper()
	id, err := table.Insert(context.Background(), &transaction.TransactionCreate{
		UserID:    userID,
		Type:      ledger.Expense,
		Amount:    ledger.RequireAmount("10.00"),
		Category:  "food",
		Date:      date,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return id
}

// -- Account tests --

func TestAccounts_InsertAndFind(t *testing.T) {
	store := storage.New(New())
	ctx := context.Background()

	id := newUser(t, store, "alice")

	byID, err := store.Accounts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, ledger.DefaultSettings(), byID.Settings)

	byName, err := store.Accounts.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	_, err = store.Accounts.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestAccounts_UsernameTaken(t *testing.T) {
	store := storage.New(New())
	newUser(t, store, "alice")

	_, err := store.Accounts.Insert(context.Background(), &account.AccountCreate{Username: "alice", PasswordHash: "x"})

	assert.ErrorIs(t, err, account.ErrUsernameTaken)
}

func TestAccounts_UpdateSettings(t *testing.T) {
	store := storage.New(New())
	ctx := context.Background()
	id := newUser(t, store, "alice")

	require.NoError(t, store.Accounts.UpdateSettings(ctx, id, ledger.Settings{Theme: ledger.ThemeDark, Currency: "$"}))
	acc, err := store.Accounts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ledger.ThemeDark, acc.Settings.Theme)

	assert.ErrorIs(t, store.Accounts.UpdateSettings(ctx, uuid.Must(uuid.NewV4()), ledger.DefaultSettings()), account.ErrNotFound)
}

// -- Transaction tests --

func TestTransactions_CRUD(t *testing.T) {
	store := storage.New(New())
	ctx := context.Background()
	userID := newUser(t, store, "alice")

	id := insertTx(t, store.Transactions, userID, ledger.NewDate(2024, 3, 5), time.Time{})

	found, err := store.Transactions.FindByID(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "food", found.Category)
	assert.False(t, found.CreatedAt.IsZero())

	err = store.Transactions.Update(ctx, userID, id, &transaction.TransactionUpdate{
		Type:     ledger.Income,
		Amount:   ledger.RequireAmount("99.99"),
		Category: "salary",
		Date:     ledger.NewDate(2024, 3, 6),
		Note:     "march",
	})
	require.NoError(t, err)

	found, err = store.Transactions.FindByID(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, ledger.Income, found.Type)
	assert.Equal(t, "march", found.Note)
	assert.True(t, found.Amount.Equal(ledger.RequireAmount("99.99")))

	require.NoError(t, store.Transactions.Delete(ctx, userID, id))
	_, err = store.Transactions.FindByID(ctx, userID, id)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
	assert.ErrorIs(t, store.Transactions.Delete(ctx, userID, id), transaction.ErrNotFound)
}

func TestTransactions_ScopedToUser(t *testing.T) {
	store := storage.New(New())
	ctx := context.Background()
	alice := newUser(t, store, "alice")
	bob := newUser(t, store, "bob")
	id := insertTx(t, store.Transactions, alice, ledger.NewDate(2024, 3, 5), time.Time{})

	_, err := store.Transactions.FindByID(ctx, bob, id)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
	err = store.Transactions.Update(ctx, bob, id, &transaction.TransactionUpdate{Type: ledger.Expense})
	assert.ErrorIs(t, err, transaction.ErrNotFound)

	list, err := store.Transactions.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactions_ListOrder(t *testing.T) {
	store := storage.New(New())
	ctx := context.Background()
	userID := newUser(t, store, "alice")
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	older := insertTx(t, store.Transactions, userID, ledger.NewDate(2024, 3, 1), base)
	sameDayFirst := insertTx(t, store.Transactions, userID, ledger.NewDate(2024, 3, 5), base)
	sameDaySecond := insertTx(t, store.Transactions, userID, ledger.NewDate(2024, 3, 5), base.Add(time.Minute))

	list, err := store.Transactions.List(ctx, userID)

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, sameDaySecond, list[0].ID)
	assert.Equal(t, sameDayFirst, list[1].ID)
	assert.Equal(t, older, list[2].ID)
}

func TestTransactions_InsertKeepsGivenID(t *testing.T) {
	store := storage.New(New())
	userID := newUser(t, store, "alice")
	given := uuid.Must(uuid.NewV4())

	id, err := store.Transactions.Insert(context.Background(), &transaction.TransactionCreate{
		ID: given, UserID: userID, Type: ledger.Expense, Amount: ledger.ParseAmount("abc"),
		Category: "food", Date: ledger.NewDate(2024, 1, 1),
	})

	require.NoError(t, err)
	assert.Equal(t, given, id)
}

// -- Writer tests --

func TestWriter_RollbackDiscards(t *testing.T) {
	store := storage.New(New())
	ctx := context.Background()
	userID := newUser(t, store, "alice")

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	insertTx(t, writer.Transactions, userID, ledger.NewDate(2024, 3, 5), time.Time{})
	require.NoError(t, writer.Rollback())

	list, err := store.Transactions.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWriter_CommitPublishes(t *testing.T) {
	store := storage.New(New())
	ctx := context.Background()
	userID := newUser(t, store, "alice")

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	insertTx(t, writer.Transactions, userID, ledger.NewDate(2024, 3, 5), time.Time{})

	before, err := store.Transactions.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, before, "uncommitted writes must not be visible")

	require.NoError(t, writer.Commit())
	require.NoError(t, writer.Rollback(), "rollback after commit is a no-op")

	after, err := store.Transactions.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestWriter_SerialisesWriters(t *testing.T) {
	store := storage.New(New())
	ctx := context.Background()

	first, err := store.Write(ctx)
	require.NoError(t, err)

	started := make(chan struct{})
	acquired := make(chan struct{})
	go func() {
		close(started)
		second, err := store.Write(ctx)
		if err == nil {
			_ = second.Rollback()
		}
		close(acquired)
	}()
	<-started

	select {
	case <-acquired:
		t.Fatal("second writer acquired while first is open")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, first.Rollback())
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second writer never acquired")
	}
}

// -- Category tests --

func TestCategories_ReplaceAndList(t *testing.T) {
	store := storage.New(New())
	ctx := context.Background()
	userID := newUser(t, store, "alice")

	empty, err := store.Categories.List(ctx, userID)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	catalog := ledger.DefaultCatalog()
	require.NoError(t, store.Categories.Replace(ctx, userID, catalog))

	got, err := store.Categories.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, catalog, got)

	got.Expense[0].Name = "mutated"
	again, err := store.Categories.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Food", again.Expense[0].Name)
}

// -- Persistence tests --

func TestOpen_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	ctx := context.Background()

	backend, err := Open(path)
	require.NoError(t, err)
	store := storage.New(backend)
	userID := newUser(t, store, "alice")
	id := insertTx(t, store.Transactions, userID, ledger.NewDate(2024, 3, 5), time.Time{})
	require.NoError(t, store.Categories.Replace(ctx, userID, ledger.DefaultCatalog()))

	reopened, err := Open(path)
	require.NoError(t, err)
	store = storage.New(reopened)

	acc, err := store.Accounts.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, userID, acc.ID)

	tx, err := store.Transactions.FindByID(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", tx.Date.String())
	assert.True(t, tx.Amount.Equal(ledger.RequireAmount("10")))

	catalog, err := store.Categories.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, ledger.DefaultCatalog(), catalog)
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	backend, err := Open(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)

	_, err = storage.New(backend).Accounts.FindByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, account.ErrNotFound)
}
