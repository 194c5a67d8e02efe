package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// CategoryService resolves the category catalog of a user.
type CategoryService struct {
	storage *storage.Storage
}

func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

// Catalog returns the user's stored catalog, or the defaults when none is
// stored or the store cannot be read.
func (s *CategoryService) Catalog(ctx context.Context, userID uuid.UUID) ledger.Catalog {
	catalog, err := s.storage.Categories.List(ctx, userID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logrus.WithError(err).WithField("userID", userID).Warn("Service.Category.List")
		}
		return ledger.DefaultCatalog()
	}
	if catalog.IsEmpty() {
		return ledger.DefaultCatalog()
	}
	return catalog
}
