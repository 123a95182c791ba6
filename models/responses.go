package models

import "time"

// PublicUser is the account projection returned by signup and profile
// updates: identity basics only, never the password hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginUser is the reduced projection returned by login.
type LoginUser struct {
	ID                     string `json:"id"`
	Email                  string `json:"email"`
	Name                   string `json:"name"`
	Avatar                 string `json:"avatar,omitempty"`
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
}

// CurrentUser is the projection returned by GET /api/auth/me: the profile
// fields minus the mutation timestamps, which only the profile endpoint
// reports.
type CurrentUser struct {
	ID                     string    `json:"id"`
	Email                  string    `json:"email"`
	Name                   string    `json:"name"`
	Avatar                 string    `json:"avatar,omitempty"`
	Role                   string    `json:"role,omitempty"`
	Languages              []string  `json:"languages,omitempty"`
	Theme                  string    `json:"theme,omitempty"`
	AIProvider             string    `json:"aiProvider,omitempty"`
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding"`
	EmailVerified          bool      `json:"emailVerified"`
	CreatedAt              time.Time `json:"createdAt"`
}

// ProfileUser is the full profile projection returned by
// the profile endpoints.
type ProfileUser struct {
	ID                     string     `json:"id"`
	Email                  string     `json:"email"`
	Name                   string     `json:"name"`
	Avatar                 string     `json:"avatar,omitempty"`
	Role                   string     `json:"role,omitempty"`
	Languages              []string   `json:"languages,omitempty"`
	Theme                  string     `json:"theme,omitempty"`
	AIProvider             string     `json:"aiProvider,omitempty"`
	HasCompletedOnboarding bool       `json:"hasCompletedOnboarding"`
	EmailVerified          bool       `json:"emailVerified"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
	LastLoginAt            *time.Time `json:"lastLoginAt,omitempty"`
}

// OnboardingUser is the projection returned after onboarding completion.
type OnboardingUser struct {
	ID                     string   `json:"id"`
	Role                   string   `json:"role,omitempty"`
	Languages              []string `json:"languages,omitempty"`
	Theme                  string   `json:"theme,omitempty"`
	AIProvider             string   `json:"aiProvider,omitempty"`
	HasCompletedOnboarding bool     `json:"hasCompletedOnboarding"`
}

// AuthResponse is the body of successful signup and login responses.
// User holds a PublicUser for signup and a LoginUser for login.
type AuthResponse struct {
	Message string `json:"message"`
	User    any    `json:"user"`
	Token   string `json:"token"`
}

// UserResponse wraps a single user projection.
type UserResponse struct {
	User any `json:"user"`
}

// UserMessageResponse carries a confirmation message plus the mutated
// projection, as returned by profile and onboarding updates.
type UserMessageResponse struct {
	Message string `json:"message"`
	User    any    `json:"user"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// ServiceInfo is the body of the root route: a small self-description of the
// running API.
type ServiceInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
