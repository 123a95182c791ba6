package models

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SignupRequest is the payload of POST /api/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate checks the signup payload: well-formed email, password of at
// least 8 characters, non-empty name.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 0)),
		validation.Field(&r.Name, validation.Required),
	)
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload. Password length is not constrained
// here: existing accounts may predate the current policy and the comparison
// fails closed anyway.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateProfileRequest is the payload of PUT /api/users/profile.
// Nil fields are left untouched; supplied fields must be valid.
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Validate rejects an explicitly empty name and a malformed avatar URL.
// Absent (nil) fields pass.
func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty),
		validation.Field(&r.Avatar, is.URL),
	)
}

// OnboardingRequest is the payload of PUT /api/users/onboarding.
// Every field is optional; completing onboarding with an empty payload is
// legal and simply confirms the hasCompletedOnboarding flag.
type OnboardingRequest struct {
	Role       *string  `json:"role,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Theme      *string  `json:"theme,omitempty"`
	AIProvider *string  `json:"aiProvider,omitempty"`
}

// Validate checks the onboarding payload. All fields are free-form strings;
// only supplied fields are checked for emptiness.
func (r OnboardingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.NilOrNotEmpty),
		validation.Field(&r.Theme, validation.NilOrNotEmpty),
		validation.Field(&r.AIProvider, validation.NilOrNotEmpty),
		validation.Field(&r.Languages, validation.Each(validation.Required)),
	)
}

// Update converts the request into the partial store mutation applied by the
// lifecycle manager. The hasCompletedOnboarding flag is always set regardless
// of which fields were supplied.
func (r OnboardingRequest) Update() UserUpdate {
	completed := true
	return UserUpdate{
		Role:                   r.Role,
		Languages:              r.Languages,
		Theme:                  r.Theme,
		AIProvider:             r.AIProvider,
		HasCompletedOnboarding: &completed,
	}
}

// ChangePasswordRequest is the payload of POST /api/users/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate requires the current password and a new password of at least
// 8 characters.
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 0)),
	)
}
