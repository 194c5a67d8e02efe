package sqlconfig

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
)

const categoriesTable = "categories"

var categoryColumns = []string{"user_id", "kind", "position", "id", "name", "icon", "color"}

type categoryRow struct {
	UserID   uuid.UUID `db:"user_id"`
	Kind     string    `db:"kind"`
	Position int       `db:"position"`
	ID       string    `db:"id"`
	Name     string    `db:"name"`
	Icon     string    `db:"icon"`
	Color    string    `db:"color"`
}

var _ category.ICategoryTable = (*CategoriesTable)(nil)

type CategoriesTable struct {
	exec bob.Executor
}

func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

// List returns the stored catalog of the user in stored order.
func (t *CategoriesTable) List(ctx context.Context, userID uuid.UUID) (ledger.Catalog, error) {
	query := psql.Select(
		sm.Columns(columnList(categoryColumns)...),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("kind")).Asc(),
		sm.OrderBy(psql.Quote("position")).Asc(),
	)
	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[categoryRow]())
	if err != nil {
		return ledger.Catalog{}, fmt.Errorf("list categories: %w", err)
	}

	var catalog ledger.Catalog
	for _, row := range rows {
		c := ledger.Category{ID: row.ID, Name: row.Name, Icon: row.Icon, Color: row.Color}
		switch ledger.TransactionType(row.Kind) {
		case ledger.Expense:
			catalog.Expense = append(catalog.Expense, c)
		case ledger.Income:
			catalog.Income = append(catalog.Income, c)
		}
	}
	return catalog, nil
}

// Replace swaps the user's catalog. It is not atomic on its own and should
// run inside a Writer.
func (t *CategoriesTable) Replace(ctx context.Context, userID uuid.UUID, catalog ledger.Catalog) error {
	del := psql.Delete(
		dm.From(categoriesTable),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	if _, err := bob.Exec(ctx, t.exec, del); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	if catalog.IsEmpty() {
		return nil
	}

	queryMods := []bob.Mod[*dialect.InsertQuery]{
		im.Into(categoriesTable, categoryColumns...),
	}
	for _, kind := range []ledger.TransactionType{ledger.Expense, ledger.Income} {
		for i, c := range catalog.For(kind) {
			queryMods = append(queryMods, im.Values(
				psql.Arg(userID),
				psql.Arg(string(kind)),
				psql.Arg(i),
				psql.Arg(c.ID),
				psql.Arg(c.Name),
				psql.Arg(c.Icon),
				psql.Arg(c.Color),
			))
		}
	}
	if _, err := bob.Exec(ctx, t.exec, psql.Insert(queryMods...)); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}
