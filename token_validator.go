package auth

// TokenValidator checks a raw bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// TokenValidatorFunc adapts a plain function into a TokenValidator. A nil
// func rejects every token.
type TokenValidatorFunc func(tokenString string) (AuthClaims, error)

func (f TokenValidatorFunc) Validate(tokenString string) (AuthClaims, error) {
	if f == nil {
		return nil, ErrUnableToDecodeSession
	}
	return f(tokenString)
}

// MultiTokenValidator runs a chain of validators against the same token.
// A malformed verdict moves on to the next validator; any other failure is
// final and stops the chain.
type MultiTokenValidator struct {
	chain []TokenValidator
}

// NewMultiTokenValidator builds the chain, skipping nil entries.
func NewMultiTokenValidator(validators ...TokenValidator) *MultiTokenValidator {
	chain := make([]TokenValidator, 0, len(validators))
	for _, v := range validators {
		if v == nil {
			continue
		}
		chain = append(chain, v)
	}
	return &MultiTokenValidator{chain: chain}
}

// Validate returns the claims of the first validator that accepts the token.
// When every validator calls the token malformed, the last malformed error
// comes back; an empty chain reports ErrTokenMalformed.
func (m *MultiTokenValidator) Validate(tokenString string) (AuthClaims, error) {
	malformed := error(ErrTokenMalformed)
	for _, v := range m.chain {
		claims, err := v.Validate(tokenString)
		switch {
		case err == nil:
			return claims, nil
		case IsMalformedError(err):
			malformed = err
		default:
			return nil, err
		}
	}
	return nil, malformed
}
