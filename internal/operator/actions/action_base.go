package actions

import (
	"context"

	"github.com/carson-networks/budget-tracker/internal/storage"
)

// IAction is a unit of work that runs inside one store transaction.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
