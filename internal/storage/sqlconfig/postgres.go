package sqlconfig

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/storage"
)

var _ storage.Backend = (*Postgres)(nil)

// Postgres is the storage backend over a PostgreSQL database.
type Postgres struct {
	db   *sql.DB
	exec bob.DB
}

// Open connects to the database behind connStr.
func Open(ctx context.Context, connStr string) (*Postgres, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgres(db), nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, exec: bob.NewDB(db)}
}

// DB exposes the underlying connection pool, used by migrations.
func (p *Postgres) DB() *sql.DB {
	return p.db
}

func (p *Postgres) Tables() storage.Reader {
	return tablesFor(p.exec)
}

func (p *Postgres) Begin(ctx context.Context) (storage.Tx, storage.Reader, error) {
	tx, err := p.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, storage.Reader{}, fmt.Errorf("begin transaction: %w", err)
	}
	return &pgTx{tx: tx}, tablesFor(tx), nil
}

type pgTx struct {
	tx bob.Tx
}

func (t *pgTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *pgTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback()
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func tablesFor(exec bob.Executor) storage.Reader {
	return storage.Reader{
		Accounts:     NewAccountsTable(exec),
		Categories:   NewCategoriesTable(exec),
		Transactions: NewTransactionsTable(exec),
	}
}
