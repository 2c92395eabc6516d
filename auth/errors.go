package auth

import "errors"

// Expected, user-facing outcomes. Anything else returned by this package is
// an unexpected failure (store unreachable, hashing primitive failure).
var (
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrAccountDeactivated   = errors.New("account is deactivated")
	ErrInvalidToken         = errors.New("could not validate credentials")
	ErrForbidden            = errors.New("not enough permissions")
	ErrBootstrapAlreadyDone = errors.New("admin user already exists")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidRole          = errors.New("invalid role")

	// ErrAccountNotFound is returned by a CredentialStore lookup that matched nothing.
	ErrAccountNotFound = errors.New("account not found")
)
