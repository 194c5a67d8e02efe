package account

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Account represents a registered user.
type Account struct {
	ID           uuid.UUID       `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"passwordHash"`
	Settings     ledger.Settings `json:"settings"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// AccountCreate is the input for registering a new account. Username must
// already be normalised to lower case.
type AccountCreate struct {
	Username     string
	PasswordHash string
	Settings     ledger.Settings
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name IAccountTable --output ../mocks
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	// Insert returns ErrUsernameTaken when the username is already registered.
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, settings ledger.Settings) error
}
