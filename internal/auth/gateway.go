package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
)

const minPasswordLength = 6

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// Outcome is the closed set of results of an auth operation.
type Outcome string

const (
	Success            Outcome = "success"
	ValidationFailed   Outcome = "validation_failed"
	UsernameTaken      Outcome = "username_taken"
	InvalidCredentials Outcome = "invalid_credentials"
	StoreUnavailable   Outcome = "store_unavailable"
)

type Result struct {
	Outcome Outcome
	Message string
}

func (r Result) OK() bool { return r.Outcome == Success }

func result(o Outcome, msg string) Result {
	return Result{Outcome: o, Message: msg}
}

// Identity is the authenticated user behind a session.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

type Session struct {
	Token     string
	Identity  Identity
	ExpiresAt time.Time
}

// Processor runs a mutating action inside a store transaction.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Gateway registers users, checks credentials and tracks bearer sessions.
type Gateway struct {
	storage    *storage.Storage
	processor  Processor
	sessions   *Registry
	bcryptCost int
}

func NewGateway(s *storage.Storage, processor Processor, sessions *Registry) *Gateway {
	return &Gateway{
		storage:    s,
		processor:  processor,
		sessions:   sessions,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func (g *Gateway) WithBcryptCost(cost int) *Gateway {
	g.bcryptCost = cost
	return g
}

// NormalizeUsername trims and lower-cases a username so that lookups are case insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (g *Gateway) Register(ctx context.Context, username, password, confirm string) Result {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || confirm == "" {
		return result(ValidationFailed, "username, password and confirmation are required")
	}
	if password != confirm {
		return result(ValidationFailed, "passwords do not match")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return result(ValidationFailed, "password must be at least 6 characters")
	}
	if !usernamePattern.MatchString(username) {
		return result(ValidationFailed, "username may only contain letters, digits and underscores, 3 to 20 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.bcryptCost)
	if err != nil {
		// Passwords over 72 bytes are the only input bcrypt rejects.
		return result(ValidationFailed, "password is too long")
	}

	action := &actions.RegisterAccount{
		Username:     NormalizeUsername(username),
		PasswordHash: string(hash),
	}
	if err := g.processor.Process(ctx, action); err != nil {
		if errors.Is(err, account.ErrUsernameTaken) {
			return result(UsernameTaken, "username is already taken")
		}
		logrus.WithError(err).WithField("username", action.Username).Error("Auth.Register.Process")
		return result(StoreUnavailable, "registration failed, please try again later")
	}
	return result(Success, "registered")
}

func (g *Gateway) Login(ctx context.Context, username, password string) (Session, Result) {
	username = NormalizeUsername(username)
	if username == "" || password == "" {
		return Session{}, result(ValidationFailed, "username and password are required")
	}

	acc, err := g.storage.Accounts.FindByUsername(ctx, username)
	if errors.Is(err, account.ErrNotFound) {
		return Session{}, result(InvalidCredentials, "wrong username or password")
	}
	if err != nil {
		logrus.WithError(err).WithField("username", username).Error("Auth.Login.FindByUsername")
		return Session{}, result(StoreUnavailable, "login failed, please try again later")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return Session{}, result(InvalidCredentials, "wrong username or password")
	}

	token, err := uuid.NewV4()
	if err != nil {
		logrus.WithError(err).Error("Auth.Login.NewV4")
		return Session{}, result(StoreUnavailable, "login failed, please try again later")
	}
	session := g.sessions.Put(token.String(), Identity{UserID: acc.ID, Username: acc.Username})
	return session, result(Success, "logged in")
}

func (g *Gateway) Logout(_ context.Context, token string) Result {
	if !g.sessions.Delete(token) {
		return result(InvalidCredentials, "not logged in")
	}
	return result(Success, "logged out")
}

// CurrentUser resolves a bearer token to its identity.
func (g *Gateway) CurrentUser(_ context.Context, token string) (Identity, bool) {
	if token == "" {
		return Identity{}, false
	}
	session, ok := g.sessions.Get(token)
	if !ok {
		return Identity{}, false
	}
	return session.Identity, true
}

// RunJanitor drops expired sessions every interval until ctx is done.
func (g *Gateway) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := g.sessions.CleanExpired(); n > 0 {
				logrus.WithField("removed", n).Debug("Auth.RunJanitor.CleanExpired")
			}
		}
	}
}
