package auth

import (
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-errors"
)

// DefaultTokenExpiration is the token lifetime in hours when none is configured.
const DefaultTokenExpiration = 24

// minSigningKeyLen enforces 256 bits of key material for HMAC signing.
const minSigningKeyLen = 32

// SimpleConfig is a plain-values implementation of Config.
type SimpleConfig struct {
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenExpiration int
	TokenLookup     string
	AuthScheme      string
	Issuer          string
	Audience        []string
}

var _ Config = (*SimpleConfig)(nil)

func (c SimpleConfig) GetSigningKey() string { return c.SigningKey }

func (c SimpleConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

func (c SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

func (c SimpleConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return DefaultTokenExpiration
	}
	return c.TokenExpiration
}

func (c SimpleConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return "header:Authorization"
	}
	return c.TokenLookup
}

func (c SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c SimpleConfig) GetIssuer() string { return c.Issuer }

func (c SimpleConfig) GetAudience() []string { return c.Audience }

// NewConfigFromEnv builds the auth configuration from the process
// environment. The signing key is required and deliberately has no default:
// a process without one must not boot.
//
//	AUTH_SIGNING_KEY       required, >= 32 bytes
//	AUTH_TOKEN_EXPIRATION  hours, default 24
//	AUTH_ISSUER            optional
//	AUTH_AUDIENCE          optional, comma separated
func NewConfigFromEnv() (*SimpleConfig, error) {
	key := os.Getenv("AUTH_SIGNING_KEY")
	if key == "" {
		return nil, errors.New("AUTH_SIGNING_KEY is required", errors.CategoryValidation)
	}

	if len(key) < minSigningKeyLen {
		return nil, errors.New(
			"AUTH_SIGNING_KEY must be at least 32 bytes",
			errors.CategoryValidation,
		)
	}

	cfg := &SimpleConfig{
		SigningKey:      key,
		TokenExpiration: DefaultTokenExpiration,
		Issuer:          os.Getenv("AUTH_ISSUER"),
	}

	if raw := os.Getenv("AUTH_TOKEN_EXPIRATION"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, errors.New(
				"AUTH_TOKEN_EXPIRATION must be a positive integer of hours",
				errors.CategoryValidation,
			)
		}
		cfg.TokenExpiration = hours
	}

	if raw := os.Getenv("AUTH_AUDIENCE"); raw != "" {
		for _, aud := range strings.Split(raw, ",") {
			if aud = strings.TrimSpace(aud); aud != "" {
				cfg.Audience = append(cfg.Audience, aud)
			}
		}
	}

	return cfg, nil
}
