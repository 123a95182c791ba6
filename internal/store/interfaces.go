// Package store implements the persistence layer of the account service:
// PostgreSQL-backed repositories for account records and the append-only
// audit trail. Email uniqueness is enforced atomically by the database
// (reject-on-conflict), never by read-then-write checks in application code.
package store

import (
	"context"
	"time"

	"github.com/nexus-ide/nexus-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the storage-facing surface for account records.
// All operations are atomic with respect to the email uniqueness invariant;
// CreateUser fails with [ErrEmailTaken] on a duplicate rather than relying
// on callers to check first.
type UserRepository interface {
	// CreateUser persists a new account and returns the canonical stored
	// record. Fails with ErrEmailTaken when the email is already registered
	// (case-insensitive).
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by its lower-cased email.
	// Fails with ErrUserNotFound when no row matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks an account up by its identifier.
	// Fails with ErrUserNotFound when no row matches.
	FindUserByID(ctx context.Context, id string) (models.User, error)

	// UpdateUser applies a partial mutation and returns the updated record.
	// Nil fields of update are left untouched. Fails with ErrUserNotFound
	// when the account no longer exists.
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)

	// UpdateLastLogin stamps the last successful login time.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// UpdatePassword overwrites the stored password hash.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// DeleteUser removes the account row entirely. Fails with
	// ErrUserNotFound when nothing was deleted.
	DeleteUser(ctx context.Context, id string) error

	// CountUsers returns the total number of accounts.
	CountUsers(ctx context.Context) (int64, error)
}

// AuditLogRepository is the append-only audit trail. Records are written
// once and never updated or deleted by the application.
type AuditLogRepository interface {
	// Append inserts a single audit record.
	Append(ctx context.Context, entry models.AuditLog) error
}
