package auth_test

import (
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	auth "github.com/iam-mahendravarma/MCP-XGeneOps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleConfigDefaults(t *testing.T) {
	cfg := auth.SimpleConfig{SigningKey: "test-signing-key"}

	assert.Equal(t, "test-signing-key", cfg.GetSigningKey())
	assert.Equal(t, "HS256", cfg.GetSigningMethod())
	assert.Equal(t, "user", cfg.GetContextKey())
	assert.Equal(t, auth.DefaultTokenExpiration, cfg.GetTokenExpiration())
	assert.Equal(t, "header:Authorization", cfg.GetTokenLookup())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
	assert.Empty(t, cfg.GetIssuer())
	assert.Empty(t, cfg.GetAudience())
}

func TestSimpleConfigOverrides(t *testing.T) {
	cfg := auth.SimpleConfig{
		SigningKey:      "test-signing-key",
		SigningMethod:   "HS512",
		ContextKey:      "identity",
		TokenExpiration: 2,
		TokenLookup:     "cookie:token",
		AuthScheme:      "Token",
		Issuer:          "test-issuer",
		Audience:        []string{"a", "b"},
	}

	assert.Equal(t, "HS512", cfg.GetSigningMethod())
	assert.Equal(t, "identity", cfg.GetContextKey())
	assert.Equal(t, 2, cfg.GetTokenExpiration())
	assert.Equal(t, "cookie:token", cfg.GetTokenLookup())
	assert.Equal(t, "Token", cfg.GetAuthScheme())
	assert.Equal(t, "test-issuer", cfg.GetIssuer())
	assert.Equal(t, []string{"a", "b"}, cfg.GetAudience())
}

func TestNewConfigFromEnv(t *testing.T) {
	validKey := strings.Repeat("k", 32)

	t.Run("missing signing key", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "")

		cfg, err := auth.NewConfigFromEnv()

		assert.Nil(t, cfg)
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryValidation, richErr.Category)
	})

	t.Run("signing key too short", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "short")

		cfg, err := auth.NewConfigFromEnv()

		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("defaults with only the key set", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", validKey)
		t.Setenv("AUTH_TOKEN_EXPIRATION", "")
		t.Setenv("AUTH_ISSUER", "")
		t.Setenv("AUTH_AUDIENCE", "")

		cfg, err := auth.NewConfigFromEnv()

		require.NoError(t, err)
		assert.Equal(t, validKey, cfg.GetSigningKey())
		assert.Equal(t, auth.DefaultTokenExpiration, cfg.GetTokenExpiration())
		assert.Empty(t, cfg.GetIssuer())
		assert.Empty(t, cfg.GetAudience())
	})

	t.Run("full configuration", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", validKey)
		t.Setenv("AUTH_TOKEN_EXPIRATION", "2")
		t.Setenv("AUTH_ISSUER", "test-issuer")
		t.Setenv("AUTH_AUDIENCE", "web, mobile ,")

		cfg, err := auth.NewConfigFromEnv()

		require.NoError(t, err)
		assert.Equal(t, 2, cfg.GetTokenExpiration())
		assert.Equal(t, "test-issuer", cfg.GetIssuer())
		assert.Equal(t, []string{"web", "mobile"}, cfg.GetAudience())
	})

	t.Run("invalid expiration", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", validKey)
		t.Setenv("AUTH_TOKEN_EXPIRATION", "soon")

		cfg, err := auth.NewConfigFromEnv()

		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("non positive expiration", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", validKey)
		t.Setenv("AUTH_TOKEN_EXPIRATION", "0")

		cfg, err := auth.NewConfigFromEnv()

		assert.Nil(t, cfg)
		assert.Error(t, err)
	})
}
