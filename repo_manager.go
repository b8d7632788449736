package auth

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Contents() Contents
}

type mngr struct {
	db       *bun.DB
	users    Users
	contents Contents
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		users:    NewUsersRepository(db),
		contents: NewContentsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.contents == nil {
		return errors.New("repository contents should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Contents() Contents {
	return m.contents
}

// NewUserStore narrows the users repository to the surface UserProvider
// consumes.
func NewUserStore(users Users) UserStore {
	return userStoreAdapter{users: users}
}

type userStoreAdapter struct {
	users Users
}

func (a userStoreAdapter) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func (a userStoreAdapter) IdentifierTaken(ctx context.Context, username, email string) (bool, error) {
	return a.users.IdentifierTaken(ctx, username, email)
}

func (a userStoreAdapter) Register(ctx context.Context, user *User) (*User, error) {
	return a.users.Register(ctx, user)
}

func (a userStoreAdapter) TrackAttemptedLogin(ctx context.Context, user *User) error {
	return a.users.TrackAttemptedLogin(ctx, user)
}

func (a userStoreAdapter) TrackSuccessfulLogin(ctx context.Context, user *User) error {
	return a.users.TrackSuccessfulLogin(ctx, user)
}
