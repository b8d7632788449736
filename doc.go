// Package auth implements token based authentication for the content
// backend: password hashing, credential validation, JWT issuance and
// verification, and the middleware that gates protected routes.
//
// Credential checks:
//   - Passwords are stored as bcrypt hashes and verified in constant time
//     relative to the outcome. An unknown identifier and a wrong password
//     surface as the same error so responses cannot enumerate accounts.
//   - Repeated failures trip a per-account attempt counter with a cool down
//     window before further logins are accepted.
//
// Tokens:
//   - TokenService signs HS256 JWTs carrying subject, user id, and username.
//     Verification is pure: any instance holding the signing key can validate
//     a token without shared state. The validity window is half-open, so a
//     token is rejected at the exact instant it expires.
//
// Transport:
//   - middleware/jwtware extracts and validates bearer tokens and exposes the
//     verified claims through both the router context and the standard
//     request context.
//   - RegisterAuthRoutes and RegisterContentRoutes mount the JSON API:
//     registration, login, profile, user scoped content, and dashboard
//     summaries.
package auth
