package category

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
)

// ICategoryTable stores a user's custom category catalog. A user without a
// stored catalog gets an empty one back, never an error.
//
//go:generate mockery --name ICategoryTable --output ../mocks
type ICategoryTable interface {
	List(ctx context.Context, userID uuid.UUID) (ledger.Catalog, error)
	Replace(ctx context.Context, userID uuid.UUID, catalog ledger.Catalog) error
}
