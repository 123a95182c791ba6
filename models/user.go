package models

import "time"

// User represents an account record used for authentication and profile
// management. Sensitive fields must never be exposed outside trusted
// boundaries; handlers return projections built via the View helpers below
// instead of the raw record.
type User struct {
	// ID is the unique account identifier (UUID, server-assigned).
	ID string `json:"id"`

	// Email is the unique, lower-cased account email. Comparison is
	// case-insensitive; callers normalise before hitting the store.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt digest of the account password.
	// Empty for accounts created through an external identity provider.
	// Never serialised.
	PasswordHash string `json:"-"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Avatar is an optional avatar URL.
	Avatar string `json:"avatar,omitempty"`

	// Role is a free-form role tag collected during onboarding.
	Role string `json:"role,omitempty"`

	// Languages is the set of programming languages declared during
	// onboarding.
	Languages []string `json:"languages,omitempty"`

	// Theme is the editor theme preference.
	Theme string `json:"theme,omitempty"`

	// AIProvider is the preferred AI completion provider.
	AIProvider string `json:"aiProvider,omitempty"`

	// HasCompletedOnboarding reports whether the onboarding flow was
	// finished at least once.
	HasCompletedOnboarding bool `json:"hasCompletedOnboarding"`

	// EmailVerified reports whether the account email has been confirmed.
	EmailVerified bool `json:"emailVerified"`

	// IsActive gates every authenticated request: structurally valid
	// tokens of a deactivated account are rejected.
	IsActive bool `json:"isActive"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last mutation.
	UpdatedAt time.Time `json:"updatedAt"`

	// LastLoginAt is the timestamp of the last successful password login,
	// nil until the first login.
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasPassword reports whether the account carries a local password hash.
// Identity-provider-only accounts do not, and must never pass password login.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// PublicView returns the projection exposed after signup and profile updates.
func (u User) PublicView() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// LoginView returns the reduced projection exposed after login.
func (u User) LoginView() LoginUser {
	return LoginUser{
		ID:                     u.ID,
		Email:                  u.Email,
		Name:                   u.Name,
		Avatar:                 u.Avatar,
		HasCompletedOnboarding: u.HasCompletedOnboarding,
	}
}

// CurrentUserView returns the projection exposed by /me.
func (u User) CurrentUserView() CurrentUser {
	return CurrentUser{
		ID:                     u.ID,
		Email:                  u.Email,
		Name:                   u.Name,
		Avatar:                 u.Avatar,
		Role:                   u.Role,
		Languages:              u.Languages,
		Theme:                  u.Theme,
		AIProvider:             u.AIProvider,
		HasCompletedOnboarding: u.HasCompletedOnboarding,
		EmailVerified:          u.EmailVerified,
		CreatedAt:              u.CreatedAt,
	}
}

// ProfileView returns the full profile projection exposed by the
// profile endpoints. It never carries the password hash.
func (u User) ProfileView() ProfileUser {
	return ProfileUser{
		ID:                     u.ID,
		Email:                  u.Email,
		Name:                   u.Name,
		Avatar:                 u.Avatar,
		Role:                   u.Role,
		Languages:              u.Languages,
		Theme:                  u.Theme,
		AIProvider:             u.AIProvider,
		HasCompletedOnboarding: u.HasCompletedOnboarding,
		EmailVerified:          u.EmailVerified,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
		LastLoginAt:            u.LastLoginAt,
	}
}

// OnboardingView returns the projection exposed after onboarding completion.
func (u User) OnboardingView() OnboardingUser {
	return OnboardingUser{
		ID:                     u.ID,
		Role:                   u.Role,
		Languages:              u.Languages,
		Theme:                  u.Theme,
		AIProvider:             u.AIProvider,
		HasCompletedOnboarding: u.HasCompletedOnboarding,
	}
}

// UserUpdate describes a partial mutation of an account record.
// Nil fields are left untouched by the store; only supplied fields are
// written. A nil Languages slice means "not supplied".
type UserUpdate struct {
	Name                   *string
	Avatar                 *string
	Role                   *string
	Languages              []string
	Theme                  *string
	AIProvider             *string
	HasCompletedOnboarding *bool
}

// IsEmpty reports whether the update carries no fields at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil &&
		u.Avatar == nil &&
		u.Role == nil &&
		u.Languages == nil &&
		u.Theme == nil &&
		u.AIProvider == nil &&
		u.HasCompletedOnboarding == nil
}

// Identity is the authenticated identity attached to the request context by
// the auth middleware. The email is informational; authorization decisions
// use the ID only.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
