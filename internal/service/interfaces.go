// Package service implements the account lifecycle: signup, login, session
// verification, profile management, and account deletion. Services own the
// business rules (credential checks, uniqueness, audit recording) and keep
// handlers free of them.
package service

import (
	"context"

	"github.com/nexus-ide/nexus-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService covers account creation and session lifecycle.
type AuthService interface {
	// Signup registers a new account and issues its first session token.
	// Fails with ErrValidation on a bad payload and store.ErrEmailTaken
	// when the email is already registered (case-insensitive).
	Signup(ctx context.Context, req models.SignupRequest, info models.RequestInfo) (models.User, models.Token, error)

	// Login verifies credentials and issues a session token. Every
	// credential failure is ErrInvalidCredentials; a verified but
	// deactivated account fails with ErrAccountDeactivated.
	Login(ctx context.Context, req models.LoginRequest, info models.RequestInfo) (models.User, models.Token, error)

	// Authenticate verifies a session token string and re-resolves the
	// account behind it. Any failure, including a deactivated or deleted
	// account, is ErrUnauthenticated.
	Authenticate(ctx context.Context, tokenString string) (models.Identity, error)

	// GetCurrentUser returns the account record of an authenticated user.
	GetCurrentUser(ctx context.Context, userID string) (models.User, error)

	// Logout records the logout in the audit trail. Tokens are stateless,
	// so there is nothing to invalidate server-side; the client discards
	// the token.
	Logout(ctx context.Context, userID string, info models.RequestInfo) error
}

// UserService covers profile and account management of an already
// authenticated user.
type UserService interface {
	// GetProfile returns the full profile record.
	GetProfile(ctx context.Context, userID string) (models.User, error)

	// UpdateProfile applies a partial profile mutation. An empty update is
	// a no-op that returns the current record without writing.
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest, info models.RequestInfo) (models.User, error)

	// CompleteOnboarding stores the onboarding answers and marks
	// onboarding as completed. Idempotent: repeating it overwrites the
	// answers and leaves the flag set.
	CompleteOnboarding(ctx context.Context, userID string, req models.OnboardingRequest, info models.RequestInfo) (models.User, error)

	// ChangePassword verifies the current password and replaces it with a
	// new one. Fails with ErrPasswordNotSet for identity-provider accounts
	// and ErrInvalidCredentials when the current password is wrong.
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest, info models.RequestInfo) error

	// DeleteAccount permanently removes the account. The audit record is
	// written before the row is deleted so the trail survives the account.
	DeleteAccount(ctx context.Context, userID string, info models.RequestInfo) error
}
