package service

import "errors"

// Sentinel errors of the account lifecycle services. The HTTP layer maps
// them to status codes; callers match with [errors.Is]. Storage-level
// sentinels (store.ErrEmailTaken, store.ErrUserNotFound) pass through
// wrapped and keep their own mapping.
var (
	// ErrValidation marks a request payload that failed validation.
	// The wrapped cause carries the field-level details.
	ErrValidation = errors.New("validation error")

	// ErrInvalidCredentials is returned for every failed credential check:
	// unknown email, missing password hash, or wrong password. The message
	// is deliberately identical for all three so responses don't reveal
	// whether an email is registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDeactivated is returned when credentials verify but the
	// account has been deactivated.
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrUnauthenticated is returned by Authenticate for every gate
	// failure: missing, malformed, expired or tampered token, unknown
	// subject, deactivated account. One sentinel for all of them keeps
	// the rejection indistinguishable to the caller.
	ErrUnauthenticated = errors.New("invalid or expired token")

	// ErrPasswordNotSet is returned when a password operation targets an
	// account created through an external identity provider, which has no
	// local password to verify or change.
	ErrPasswordNotSet = errors.New("account has no password set")
)
