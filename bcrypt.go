package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyPasswordHash is a bcrypt digest of a random throwaway value. When a
// login identifier resolves to no account we still run a compare against it,
// so "unknown user" and "wrong password" cost the same wall-clock time.
const dummyPasswordHash = "$2a$14$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword will generate a password hash. Every call salts the input, so
// two hashes of the same password never compare equal; use
// ComparePasswordAndHash instead of string equality.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. Any compare failure, including a corrupt stored hash,
// is reported as a mismatch; callers never learn which one happened.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}

// compareDummyHash burns one bcrypt verification of comparable cost. It is
// called on the not-found path of credential checks and always fails.
func compareDummyHash(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
}
