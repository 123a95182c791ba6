package models

import "time"

// AuditAction enumerates the account lifecycle events recorded in the audit
// trail. The string values are stored verbatim in the audit_logs table.
type AuditAction string

const (
	ActionSignup              AuditAction = "signup"
	ActionLogin               AuditAction = "login"
	ActionLogout              AuditAction = "logout"
	ActionProfileUpdate       AuditAction = "profile_update"
	ActionOnboardingCompleted AuditAction = "onboarding_completed"
	ActionPasswordChange      AuditAction = "password_change"
	ActionAccountDeleted      AuditAction = "account_deleted"
)

// AuditLog is an immutable append-only record of a security-relevant account
// action. Records are written exactly once and never updated or deleted by
// the application; they are retained even after the owning account is gone.
type AuditLog struct {
	// ID is the server-assigned record identifier.
	ID int64 `json:"id"`

	// UserID is the owning account identifier. Nil when the actor could
	// not be resolved. No foreign key constraint: audit history outlives
	// the account it describes.
	UserID *string `json:"userId,omitempty"`

	// Action is the lifecycle event tag.
	Action AuditAction `json:"action"`

	// Details is an optional free-text note about the event.
	Details string `json:"details,omitempty"`

	// IPAddress is the originating network address of the request.
	IPAddress string `json:"ipAddress"`

	// UserAgent is the originating client descriptor.
	UserAgent string `json:"userAgent"`

	// CreatedAt is the record creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the AuditLog model.
func (a AuditLog) TableName() string {
	return "audit_logs"
}

// RequestInfo carries the request-identity strings recorded alongside every
// audit entry. It is captured at the HTTP boundary and threaded through the
// service layer.
type RequestInfo struct {
	// IPAddress is the client network address as resolved by the router
	// (X-Real-IP / X-Forwarded-For aware).
	IPAddress string

	// UserAgent is the raw User-Agent header value.
	UserAgent string
}
