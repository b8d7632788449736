package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	auth "github.com/iam-mahendravarma/MCP-XGeneOps"
	"github.com/stretchr/testify/assert"
)

func TestJWTClaims_UserID(t *testing.T) {
	t.Run("uses the uid claim when present", func(t *testing.T) {
		claims := &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-1"},
			UID:              "uid-1",
		}

		assert.Equal(t, "uid-1", claims.UserID())
	})

	t.Run("falls back to the subject claim", func(t *testing.T) {
		claims := &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-1"},
		}

		assert.Equal(t, "subject-1", claims.UserID())
	})
}

func TestJWTClaims_Accessors(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expires := issued.Add(2 * time.Hour)

	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "subject-1",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Uname: "tester",
	}

	assert.Equal(t, "subject-1", claims.Subject())
	assert.Equal(t, "tester", claims.Username())
	assert.Equal(t, issued.Unix(), claims.IssuedAt().Unix())
	assert.Equal(t, expires.Unix(), claims.Expires().Unix())
}

func TestJWTClaims_ZeroTimes(t *testing.T) {
	claims := &auth.JWTClaims{}

	assert.True(t, claims.IssuedAt().IsZero())
	assert.True(t, claims.Expires().IsZero())
}
