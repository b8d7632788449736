package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced alongside structured errors so API clients can branch
// without parsing messages.
const (
	TextCodeInvalidCreds       = "INVALID_CREDENTIALS"
	TextCodeDuplicateIdentity  = "DUPLICATE_IDENTITY"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenInvalid       = "TOKEN_INVALID"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeTooManyAttempts    = "TOO_MANY_LOGIN_ATTEMPTS"
	TextCodeUnauthorized       = "UNAUTHORIZED"
	TextCodeEmptyPassword      = "EMPTY_PASSWORD"
	TextCodeStoreUnavailable   = "STORE_UNAVAILABLE"
	TextCodeSessionDecodeError = "SESSION_DECODE_ERROR"
)

// ErrIdentityNotFound is internal only; credential checks translate it into
// ErrMismatchedHashAndPassword before anything reaches a caller.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound)

// ErrMismatchedHashAndPassword is the single failure for bad credentials.
// Unknown identifier and wrong password both map here so responses cannot be
// used to enumerate accounts.
var ErrMismatchedHashAndPassword = errors.New(
	"the credentials provided are invalid",
	errors.CategoryAuth,
).WithTextCode(TextCodeInvalidCreds).WithCode(errors.CodeUnauthorized)

// ErrDuplicateIdentity is returned when a registration collides with an
// existing username or email, including store-level uniqueness races.
var ErrDuplicateIdentity = errors.New(
	"an account with that username or email already exists",
	errors.CategoryConflict,
).WithTextCode(TextCodeDuplicateIdentity).WithCode(errors.CodeConflict)

// ErrTokenExpired marks a token whose signature checks out but whose
// validity window has closed.
var ErrTokenExpired = errors.New(
	"token is expired",
	errors.CategoryAuth,
).WithTextCode(TextCodeTokenExpired).WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid marks a signature mismatch: tampering or a rotated key.
var ErrTokenInvalid = errors.New(
	"token signature is invalid",
	errors.CategoryAuth,
).WithTextCode(TextCodeTokenInvalid).WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed marks tokens that do not even parse; no signature check
// is attempted for these.
var ErrTokenMalformed = errors.New(
	"token is malformed",
	errors.CategoryAuth,
).WithTextCode(TextCodeTokenMalformed).WithCode(errors.CodeUnauthorized)

// ErrUnauthorized is the only token failure the API ever renders. Every
// verification failure collapses into it before a response is written; which
// kind it was stays in the logs.
var ErrUnauthorized = errors.New(
	"invalid or expired authentication token",
	errors.CategoryAuth,
).WithTextCode(TextCodeUnauthorized).WithCode(errors.CodeUnauthorized)

// ErrTooManyLoginAttempts enforces the login cool down window.
var ErrTooManyLoginAttempts = errors.New(
	"too many login attempts, try again later",
	errors.CategoryRateLimit,
).WithTextCode(TextCodeTooManyAttempts)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New(
	"password must not be empty",
	errors.CategoryValidation,
).WithTextCode(TextCodeEmptyPassword)

// ErrStoreUnavailable signals an identity store timeout or outage. It must
// never be collapsed into a credentials failure.
var ErrStoreUnavailable = errors.New(
	"identity store unavailable",
	errors.CategoryInternal,
).WithTextCode(TextCodeStoreUnavailable)

// ErrUnableToDecodeSession covers claims that validate but cannot be mapped
// into a session view.
var ErrUnableToDecodeSession = errors.New(
	"unable to decode session",
	errors.CategoryAuth,
).WithTextCode(TextCodeSessionDecodeError).WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens, including string-matched
// errors coming out of JWT middleware layers.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for malformed token errors.
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsConflictError reports whether err carries a conflict category, e.g. a
// duplicate identity surfaced by the store's uniqueness constraint.
func IsConflictError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateIdentity) {
		return true
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Category == errors.CategoryConflict {
		return true
	}
	// Driver-level uniqueness violations from concurrent registrations.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
