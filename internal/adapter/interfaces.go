// Package adapter provides a typed Go client for the nexus-api REST
// surface, intended for other services and integration tooling that talk to
// the account API.
//
// The primary abstraction is [AccountClient], which decouples callers from
// the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPAccountClient]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/nexus-ide/nexus-api/models"
)

// AccountClient defines transport-agnostic communication with the account
// API. Implementations are responsible for serialisation, bearer token
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type AccountClient interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Signup and Login call it automatically.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or an
	// empty string if none has been set.
	Token() string

	// Signup registers a new account. On success the session token from
	// the response is stored via SetToken.
	Signup(ctx context.Context, req models.SignupRequest) (models.PublicUser, error)

	// Login authenticates with email and password. On success the session
	// token from the response is stored via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginUser, error)

	// CurrentUser fetches the identity view of the authenticated account.
	CurrentUser(ctx context.Context) (models.CurrentUser, error)

	// Logout records the logout server-side and clears the stored token.
	Logout(ctx context.Context) error

	// Profile fetches the full profile record.
	Profile(ctx context.Context) (models.ProfileUser, error)

	// UpdateProfile applies a partial profile mutation.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.ProfileUser, error)

	// CompleteOnboarding stores onboarding answers and marks onboarding
	// as completed.
	CompleteOnboarding(ctx context.Context, req models.OnboardingRequest) (models.OnboardingUser, error)

	// ChangePassword verifies the current password and replaces it.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// DeleteAccount permanently removes the authenticated account and
	// clears the stored token.
	DeleteAccount(ctx context.Context) error
}
