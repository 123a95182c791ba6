package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailTaken is returned when an attempt to register a new account
	// fails because an account with the same email (compared
	// case-insensitively) already exists in the database.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound is returned when a query expected to match exactly one
	// account record produces an empty result set.
	ErrUserNotFound = errors.New("user not found")

	// ErrAuditLogNotSaved is returned when an audit INSERT completes without
	// a driver error but no row was actually persisted.
	ErrAuditLogNotSaved = errors.New("audit log was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. no columns to update).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
