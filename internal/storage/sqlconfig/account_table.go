package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
)

const (
	accountsTable      = "accounts"
	uniqueViolation    = "23505"
	accountsUsernameIx = "accounts_username_key"
)

var accountColumns = []string{"id", "username", "password_hash", "theme", "currency", "created_at"}

type accountRow struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Theme        string    `db:"theme"`
	Currency     string    `db:"currency"`
	CreatedAt    time.Time `db:"created_at"`
}

// Ensure AccountsTable implements IAccountTable at compile time.
var _ account.IAccountTable = (*AccountsTable)(nil)

// AccountsTable provides access to the accounts table.
type AccountsTable struct {
	exec bob.Executor
}

func NewAccountsTable(exec bob.Executor) *AccountsTable {
	return &AccountsTable{exec: exec}
}

// FindByID retrieves an account by primary key.
func (t *AccountsTable) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return t.findOne(ctx, psql.Quote("id").EQ(psql.Arg(id)))
}

// FindByUsername retrieves an account by its lower-cased username.
func (t *AccountsTable) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	return t.findOne(ctx, psql.Quote("username").EQ(psql.Arg(username)))
}

func (t *AccountsTable) findOne(ctx context.Context, where bob.Expression) (*account.Account, error) {
	query := psql.Select(
		sm.Columns(columnList(accountColumns)...),
		sm.From(accountsTable),
		sm.Where(where),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}
	return rowToAccount(row), nil
}

// Insert registers a new account and returns its generated ID.
func (t *AccountsTable) Insert(ctx context.Context, create *account.AccountCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	settings := create.Settings.Normalize()
	query := psql.Insert(
		im.Into(accountsTable, accountColumns...),
		im.Values(
			psql.Arg(id),
			psql.Arg(create.Username),
			psql.Arg(create.PasswordHash),
			psql.Arg(string(settings.Theme)),
			psql.Arg(settings.Currency),
			psql.Arg(time.Now().UTC()),
		),
	)
	if _, err := bob.Exec(ctx, t.exec, query); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == accountsUsernameIx {
			return uuid.Nil, account.ErrUsernameTaken
		}
		return uuid.Nil, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

// UpdateSettings stores the display preferences of an account.
func (t *AccountsTable) UpdateSettings(ctx context.Context, id uuid.UUID, settings ledger.Settings) error {
	query := psql.Update(
		um.Table(accountsTable),
		um.SetCol("theme").ToArg(string(settings.Theme)),
		um.SetCol("currency").ToArg(settings.Currency),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return fmt.Errorf("update account settings: %w", err)
	}
	return requireAffected(res, account.ErrNotFound)
}

func rowToAccount(row accountRow) *account.Account {
	return &account.Account{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Settings: ledger.Settings{
			Theme:    ledger.Theme(row.Theme),
			Currency: row.Currency,
		},
		CreatedAt: row.CreatedAt,
	}
}
