package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

const transactionsTable = "transactions"

var transactionColumns = []string{"id", "user_id", "type", "amount", "category", "transaction_date", "note", "created_at"}

type transactionRow struct {
	ID              uuid.UUID              `db:"id"`
	UserID          uuid.UUID              `db:"user_id"`
	Type            ledger.TransactionType `db:"type"`
	Amount          ledger.Amount          `db:"amount"`
	Category        string                 `db:"category"`
	TransactionDate ledger.Date            `db:"transaction_date"`
	Note            string                 `db:"note"`
	CreatedAt       time.Time              `db:"created_at"`
}

var _ transaction.ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	query := psql.Select(
		sm.Columns(columnList(transactionColumns)...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[transactionRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select transaction: %w", err)
	}
	return rowToTransaction(row), nil
}

// Insert creates a new transaction and returns its ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
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

	query := psql.Insert(
		im.Into(transactionsTable, transactionColumns...),
		im.Values(
			psql.Arg(id),
			psql.Arg(create.UserID),
			psql.Arg(string(create.Type)),
			psql.Arg(create.Amount),
			psql.Arg(create.Category),
			psql.Arg(create.Date),
			psql.Arg(create.Note),
			psql.Arg(createdAt),
		),
	)
	if _, err := bob.Exec(ctx, t.exec, query); err != nil {
		return uuid.Nil, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

// Update replaces the mutable fields of a transaction.
func (t *TransactionsTable) Update(ctx context.Context, userID, id uuid.UUID, update *transaction.TransactionUpdate) error {
	query := psql.Update(
		um.Table(transactionsTable),
		um.SetCol("type").ToArg(string(update.Type)),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("category").ToArg(update.Category),
		um.SetCol("transaction_date").ToArg(update.Date),
		um.SetCol("note").ToArg(update.Note),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireAffected(res, transaction.ErrNotFound)
}

func (t *TransactionsTable) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(transactionsTable),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireAffected(res, transaction.ErrNotFound)
}

// List returns every transaction of the user, newest first.
func (t *TransactionsTable) List(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	query := psql.Select(
		sm.Columns(columnList(transactionColumns)...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	result := make([]*transaction.Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}

func (t *TransactionsTable) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	query := psql.Delete(
		dm.From(transactionsTable),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	if _, err := bob.Exec(ctx, t.exec, query); err != nil {
		return fmt.Errorf("delete transactions: %w", err)
	}
	return nil
}

func rowToTransaction(row transactionRow) *transaction.Transaction {
	return &transaction.Transaction{
		ID:        row.ID,
		UserID:    row.UserID,
		Type:      row.Type,
		Amount:    row.Amount,
		Category:  row.Category,
		Date:      row.TransactionDate,
		Note:      row.Note,
		CreatedAt: row.CreatedAt,
	}
}

func columnList(columns []string) []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = psql.Quote(c)
	}
	return out
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
