package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

// UserTracker is a store we can use to retrieve users
type UserTracker interface {
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	TrackAttemptedLogin(ctx context.Context, user *User) error
	TrackSuccessfulLogin(ctx context.Context, user *User) error
}

// UserRegistry is the store surface needed to create accounts. The uniqueness
// constraint lives in the store; the provider pre-checks to fail cheaply but
// relies on the constraint to settle races.
type UserRegistry interface {
	IdentifierTaken(ctx context.Context, username, email string) (bool, error)
	Register(ctx context.Context, user *User) (*User, error)
}

// UserStore is the full persistence surface the provider consumes.
type UserStore interface {
	UserTracker
	UserRegistry
}

// UserProvider verifies credentials and registers accounts against a UserStore.
type UserProvider struct {
	store  UserStore
	logger Logger
}

// MaxLoginAttempts is the maximum number of attempts a user gets in a period
var MaxLoginAttempts = 5

// CoolDownPeriod is the period in which we enforce a cool down
var CoolDownPeriod = "24h"

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. Unknown identifier and wrong password return the same error; the
// not-found path burns a dummy hash comparison so its latency matches. Store
// calls run under a bounded deadline.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "context cancelled during verification")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			compareDummyHash(password)
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	if user.LoginAttemptAt != nil {
		active, err := LoginCooldownActive(*user.LoginAttemptAt, CoolDownPeriod)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to calculate login attempt cooldown")
		}

		if !active {
			user.LoginAttempts = 0
		}
	}

	// if we have too many attempts in the given window, cool off!
	if user.LoginAttempts > MaxLoginAttempts {
		return nil, ErrTooManyLoginAttempts
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if err2 := u.store.TrackAttemptedLogin(ctx, user); err2 != nil {
			u.logger.Error("failed to track login attempt", "error", err2)
		}

		return nil, ErrMismatchedHashAndPassword
	}

	if err := u.store.TrackSuccessfulLogin(ctx, user); err != nil {
		u.logger.Error("failed to track successful login", "error", err)
	}

	return authIdentity{
		id:       user.ID.String(),
		email:    user.Email,
		username: user.Username,
	}, nil
}

// FindIdentityByIdentifier resolves an identity without a credential check.
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	return authIdentity{
		id:       user.ID.String(),
		email:    user.Email,
		username: user.Username,
	}, nil
}

// RegisterUser creates an account. The uniqueness check runs before the hash
// so rejected registrations never pay for bcrypt; a store-level constraint
// violation from a concurrent registration still comes back as a conflict.
func (u *UserProvider) RegisterUser(ctx context.Context, username, email, password string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	taken, err := u.store.IdentifierTaken(ctx, username, email)
	if err != nil {
		return nil, errors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}
	if taken {
		return nil, ErrDuplicateIdentity
	}

	hash, err := HashPassword(password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if id, err := hashid.NewUUID(email); err == nil {
		user.ID = id
	}

	created, err := u.store.Register(ctx, user)
	if err != nil {
		if IsConflictError(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create user")
	}

	return created, nil
}

type authIdentity struct {
	id       string
	username string
	email    string
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Username() string {
	return a.username
}

func (a authIdentity) Email() string {
	return a.email
}

var _ Identity = authIdentity{}
var _ IdentityProvider = (*UserProvider)(nil)
var _ AccountRegistrerer = (*UserProvider)(nil)
