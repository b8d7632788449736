package auth

import (
	"context"
	"net/http"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/iam-mahendravarma/MCP-XGeneOps/middleware/jwtware"
)

// LoginPayload is the credential surface HTTP handlers hand to the route
// authenticator.
type LoginPayload interface {
	GetIdentifier() string
	GetPassword() string
}

// HTTPAuthenticator wires the authenticator into transport middleware and
// handlers.
type HTTPAuthenticator interface {
	Login(ctx router.Context, payload LoginPayload) (string, error)
	ProtectedRoute(cfg Config, errorHandler router.ErrorHandler) router.MiddlewareFunc
	MakeAPIAuthErrorHandler(optional bool) router.ErrorHandler
}

type RouteAuthenticator struct {
	auth         Authenticator
	cfg          Config
	tokens       TokenService
	listeners    []jwtware.ValidationListener
	Logger       Logger
	ErrorHandler router.ErrorHandler
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	if provider, ok := auther.(interface{ TokenService() TokenService }); ok {
		a.tokens = provider.TokenService()
	} else {
		a.tokens = NewTokenService(
			[]byte(cfg.GetSigningKey()),
			cfg.GetTokenExpiration(),
			cfg.GetIssuer(),
			cfg.GetAudience(),
			defLogger{},
		)
	}

	a.ErrorHandler = a.defaultErrHandler

	return a, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// WithValidationListeners registers hooks that run after the middleware has
// validated a token, before the request proceeds.
func (a *RouteAuthenticator) WithValidationListeners(listeners ...jwtware.ValidationListener) *RouteAuthenticator {
	a.listeners = append(a.listeners, listeners...)
	return a
}

// ProtectedRoute returns the middleware that rejects any request lacking a
// valid bearer token. Verified claims are exposed through the router context
// and the standard request context.
func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler router.ErrorHandler) router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		ErrorHandler:   errorHandler,
		TokenValidator: claimsValidator{tokens: a.tokens},
		SigningKey: jwtware.SigningKey{
			Key:    []byte(cfg.GetSigningKey()),
			JWTAlg: cfg.GetSigningMethod(),
		},
		AuthScheme:          cfg.GetAuthScheme(),
		ContextKey:          cfg.GetContextKey(),
		TokenLookup:         cfg.GetTokenLookup(),
		ValidationListeners: a.listeners,
		ContextEnricher:     enrichRequestContext,
	})
}

// Login exchanges credentials for a signed bearer token. The caller decides
// how to hand the token back to the client.
func (a *RouteAuthenticator) Login(ctx router.Context, payload LoginPayload) (string, error) {
	token, err := a.auth.Login(ctx.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return "", err
	}
	return token, nil
}

// MakeAPIAuthErrorHandler renders every token failure as the same generic
// unauthorized response; the failure kind only shows up in the logs. When
// optional is true the request proceeds unauthenticated instead.
func (a *RouteAuthenticator) MakeAPIAuthErrorHandler(optional bool) router.ErrorHandler {
	return func(ctx router.Context, err error) error {
		kind := "invalid"
		switch {
		case IsTokenExpiredError(err):
			kind = "expired"
		case IsMalformedError(err):
			kind = "malformed"
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding", "kind", kind)
			return ctx.Next()
		}

		a.Logger.Info("Rejected auth token", "kind", kind, "error", err)

		return a.ErrorHandler(ctx, ErrUnauthorized)
	}
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	a.Logger.Info(
		"HTTP error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	return c.JSON(StatusForError(richErr), map[string]any{
		"error": map[string]any{
			"message": richErr.Message,
			"code":    richErr.TextCode,
		},
	})
}

// StatusForError maps a structured error onto its HTTP status code.
func StatusForError(err *errors.Error) int {
	if err == nil {
		return http.StatusOK
	}

	if err.TextCode == TextCodeStoreUnavailable {
		return http.StatusServiceUnavailable
	}

	switch err.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return http.StatusUnauthorized
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryNotFound:
		return http.StatusNotFound
	}

	if err.Code >= 400 && err.Code <= 599 {
		return err.Code
	}

	return http.StatusInternalServerError
}

// GetRouterSession builds the session view from the claims the middleware
// stored in the router context.
func GetRouterSession(c router.Context, key string) (*SessionObject, error) {
	claims, ok := GetRouterClaims(c, key)
	if !ok {
		return nil, ErrUnableToDecodeSession
	}
	return sessionFromAuthClaims(claims)
}

// claimsValidator adapts the token service to the middleware's validator
// surface without an import cycle.
type claimsValidator struct {
	tokens TokenService
}

func (v claimsValidator) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := v.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func enrichRequestContext(ctx context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return ctx
	}

	ctx = WithClaimsContext(ctx, authClaims)
	if actor := ActorFromClaims(authClaims); actor != nil {
		ctx = WithActorContext(ctx, actor)
	}

	return ctx
}

var _ HTTPAuthenticator = (*RouteAuthenticator)(nil)
