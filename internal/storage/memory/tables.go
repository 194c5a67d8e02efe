package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

var (
	_ account.IAccountTable         = (*accountsTable)(nil)
	_ category.ICategoryTable       = (*categoriesTable)(nil)
	_ transaction.ITransactionTable = (*transactionsTable)(nil)
)

func tablesFor(a access) storage.Reader {
	return storage.Reader{
		Accounts:     &accountsTable{access: a},
		Categories:   &categoriesTable{access: a},
		Transactions: &transactionsTable{access: a},
	}
}

type accountsTable struct {
	access access
}

func (t *accountsTable) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *account.Account
	err := t.access.view(func(st *state) error {
		a, ok := st.Accounts[id]
		if !ok {
			return account.ErrNotFound
		}
		found = &a
		return nil
	})
	return found, err
}

func (t *accountsTable) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *account.Account
	err := t.access.view(func(st *state) error {
		for _, a := range st.Accounts {
			if a.Username == username {
				a := a
				found = &a
				return nil
			}
		}
		return account.ErrNotFound
	})
	return found, err
}

func (t *accountsTable) Insert(ctx context.Context, create *account.AccountCreate) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	err = t.access.update(func(st *state) error {
		for _, a := range st.Accounts {
			if a.Username == create.Username {
				return account.ErrUsernameTaken
			}
		}
		st.Accounts[id] = account.Account{
			ID:           id,
			Username:     create.Username,
			PasswordHash: create.PasswordHash,
			Settings:     create.Settings.Normalize(),
			CreatedAt:    time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *accountsTable) UpdateSettings(ctx context.Context, id uuid.UUID, settings ledger.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.access.update(func(st *state) error {
		a, ok := st.Accounts[id]
		if !ok {
			return account.ErrNotFound
		}
		a.Settings = settings
		st.Accounts[id] = a
		return nil
	})
}

type categoriesTable struct {
	access access
}

func (t *categoriesTable) List(ctx context.Context, userID uuid.UUID) (ledger.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Catalog{}, err
	}
	var out ledger.Catalog
	err := t.access.view(func(st *state) error {
		out = copyCatalog(st.Categories[userID])
		return nil
	})
	return out, err
}

func (t *categoriesTable) Replace(ctx context.Context, userID uuid.UUID, catalog ledger.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.access.update(func(st *state) error {
		if catalog.IsEmpty() {
			delete(st.Categories, userID)
			return nil
		}
		st.Categories[userID] = copyCatalog(catalog)
		return nil
	})
}

type transactionsTable struct {
	access access
}

func (t *transactionsTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *transaction.Transaction
	err := t.access.view(func(st *state) error {
		tx, ok := st.Transactions[userID][id]
		if !ok {
			return transaction.ErrNotFound
		}
		found = &tx
		return nil
	})
	return found, err
}

func (t *transactionsTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	id := create.ID
	if id == uuid.Nil {
		var err error
		if id, err = uuid.NewV4(); err != nil {
			return uuid.Nil, err
		}
	}
	createdAt := create.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	err := t.access.update(func(st *state) error {
		txs, ok := st.Transactions[create.UserID]
		if !ok {
			txs = map[uuid.UUID]transaction.Transaction{}
			st.Transactions[create.UserID] = txs
		}
		txs[id] = transaction.Transaction{
			ID:        id,
			UserID:    create.UserID,
			Type:      create.Type,
			Amount:    create.Amount,
			Category:  create.Category,
			Date:      create.Date,
			Note:      create.Note,
			CreatedAt: createdAt,
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *transactionsTable) Update(ctx context.Context, userID, id uuid.UUID, update *transaction.TransactionUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.access.update(func(st *state) error {
		tx, ok := st.Transactions[userID][id]
		if !ok {
			return transaction.ErrNotFound
		}
		tx.Type = update.Type
		tx.Amount = update.Amount
		tx.Category = update.Category
		tx.Date = update.Date
		tx.Note = update.Note
		st.Transactions[userID][id] = tx
		return nil
	})
}

func (t *transactionsTable) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.access.update(func(st *state) error {
		if _, ok := st.Transactions[userID][id]; !ok {
			return transaction.ErrNotFound
		}
		delete(st.Transactions[userID], id)
		return nil
	})
}

// List orders like the postgres table: date, then creation time, then id, all descending.
func (t *transactionsTable) List(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*transaction.Transaction
	err := t.access.view(func(st *state) error {
		txs := st.Transactions[userID]
		out = make([]*transaction.Transaction, 0, len(txs))
		for _, tx := range txs {
			tx := tx
			out = append(out, &tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})
	return out, nil
}

func (t *transactionsTable) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.access.update(func(st *state) error {
		delete(st.Transactions, userID)
		return nil
	})
}
