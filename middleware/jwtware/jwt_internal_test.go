package jwtware

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{}

func (stubValidator) Validate(tokenString string) (AuthClaims, error) {
	return nil, errors.New("not implemented")
}

func TestGetExtractors(t *testing.T) {
	tests := []struct {
		name        string
		tokenLookup string
		expected    int
	}{
		{
			name:        "single header lookup",
			tokenLookup: "header:Authorization",
			expected:    1,
		},
		{
			name:        "multiple sources",
			tokenLookup: "header:Authorization,cookie:jwt,query:auth_token,param:token",
			expected:    4,
		},
		{
			name:        "whitespace around entries",
			tokenLookup: " header:Authorization , cookie:jwt ",
			expected:    2,
		},
		{
			name:        "unknown source is skipped",
			tokenLookup: "body:token",
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractors := GetExtractors(tt.tokenLookup, "Bearer")
			assert.Len(t, extractors, tt.expected)
		})
	}
}

func TestGetDefaultConfig(t *testing.T) {
	t.Run("fills in defaults", func(t *testing.T) {
		cfg := GetDefaultConfig(Config{
			TokenValidator: stubValidator{},
			SigningKey: SigningKey{
				Key:    []byte("test-secret"),
				JWTAlg: "HS256",
			},
		})

		assert.Equal(t, "user", cfg.ContextKey)
		assert.Equal(t, defaultTokenLookup, cfg.TokenLookup)
		assert.Equal(t, "Bearer", cfg.AuthScheme)
		assert.NotNil(t, cfg.SuccessHandler)
		assert.NotNil(t, cfg.ErrorHandler)
		assert.NotNil(t, cfg.KeyFunc)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := GetDefaultConfig(Config{
			TokenValidator: stubValidator{},
			SigningKey: SigningKey{
				Key:    []byte("test-secret"),
				JWTAlg: "HS256",
			},
			ContextKey:  "identity",
			TokenLookup: "cookie:jwt",
			AuthScheme:  "Token",
		})

		assert.Equal(t, "identity", cfg.ContextKey)
		assert.Equal(t, "cookie:jwt", cfg.TokenLookup)
		assert.Equal(t, "Token", cfg.AuthScheme)
	})

	t.Run("panics without a token validator", func(t *testing.T) {
		assert.Panics(t, func() {
			GetDefaultConfig(Config{
				SigningKey: SigningKey{Key: []byte("test-secret")},
			})
		})
	})

	t.Run("panics without any key source", func(t *testing.T) {
		assert.Panics(t, func() {
			GetDefaultConfig(Config{
				TokenValidator: stubValidator{},
			})
		})
	})
}

func TestSigningKeyFunc(t *testing.T) {
	key := SigningKey{Key: []byte("test-secret"), JWTAlg: "HS256"}
	fn := signingKeyFunc(key)

	t.Run("matching algorithm", func(t *testing.T) {
		token := &jwt.Token{Header: map[string]any{"alg": "HS256"}}

		got, err := fn(token)
		require.NoError(t, err)
		assert.Equal(t, key.Key, got)
	})

	t.Run("algorithm mismatch", func(t *testing.T) {
		token := &jwt.Token{Header: map[string]any{"alg": "RS256"}}

		_, err := fn(token)
		assert.Error(t, err)
	})

	t.Run("missing algorithm header", func(t *testing.T) {
		token := &jwt.Token{Header: map[string]any{}}

		_, err := fn(token)
		assert.Error(t, err)
	})

	t.Run("no pinned algorithm accepts any", func(t *testing.T) {
		loose := signingKeyFunc(SigningKey{Key: []byte("test-secret")})
		token := &jwt.Token{Header: map[string]any{"alg": "RS256"}}

		got, err := loose(token)
		require.NoError(t, err)
		assert.Equal(t, []byte("test-secret"), got)
	})
}

func TestKeyfuncOptionsRefreshErrorHandlerIsSafe(t *testing.T) {
	opts := keyfuncOptions(nil)
	require.NotNil(t, opts.RefreshErrorHandler)
	require.NotPanics(t, func() {
		opts.RefreshErrorHandler(errors.New("refresh failed"))
	})

	require.Equal(t, time.Hour, opts.RefreshInterval)
	require.Equal(t, 5*time.Minute, opts.RefreshRateLimit)
	require.Equal(t, 10*time.Second, opts.RefreshTimeout)
	require.True(t, opts.RefreshUnknownKID)
}
