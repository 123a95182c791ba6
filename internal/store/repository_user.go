package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, partial mutation, and deletion against
// the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser scans one full account row (in userColumns order) into a
// models.User, converting nullable columns to their zero values.
func scanUser(s rowScanner) (models.User, error) {
	var (
		user                            models.User
		passwordHash                    sql.NullString
		avatar, role, theme, aiProvider sql.NullString
		languages                       stringSlice
		lastLoginAt                     sql.NullTime
	)

	err := s.Scan(
		&user.ID,
		&user.Email,
		&passwordHash,
		&user.Name,
		&avatar,
		&role,
		&languages,
		&theme,
		&aiProvider,
		&user.HasCompletedOnboarding,
		&user.EmailVerified,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = passwordHash.String
	user.Avatar = avatar.String
	user.Role = role.String
	user.Languages = languages
	user.Theme = theme.String
	user.AIProvider = aiProvider.String
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		user.LastLoginAt = &t
	}

	return user, nil
}

// nullIfEmpty maps the empty string to SQL NULL.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateUser persists a new account record and returns the fully populated
// [models.User] with server-assigned fields (timestamps, defaults).
//
// The INSERT returns all columns via a RETURNING clause, so the caller
// receives the canonical database representation of the new account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailTaken].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.ID, user.Email, nullIfEmpty(user.PasswordHash), user.Name)

	created, err := scanUser(row)
	if err != nil {
		switch {
		case postgresError(err) == pgerrcode.UniqueViolation:
			log.Warn().Str("func", "*userRepository.CreateUser").Msg("email already registered")
			return models.User{}, ErrEmailTaken
		case errors.Is(err, sql.ErrNoRows):
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("insert returned no row")
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		default:
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail retrieves the account whose email matches the given one,
// compared case-insensitively.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByEmail, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error searching user by email")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByID retrieves the account with the given identifier.
//
// Error handling mirrors [userRepository.FindUserByEmail].
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByID, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error searching user by id")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// UpdateUser applies the non-nil fields of update to the account row and
// returns the updated record. Concurrent updates to disjoint fields are
// serialised by the database; overlapping fields are last-writer-wins.
//
// Error handling:
//   - Empty update → wrapped [ErrBuildingSQLQuery].
//   - No matching row → [ErrUserNotFound].
func (r *userRepository) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(id, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("failed to build update query")
		return models.User{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// UpdateLastLogin stamps the account's last successful login time.
func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateLastLogin, id, at)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateLastLogin").Msg("error updating last login")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePassword overwrites the stored password hash for the account.
func (r *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updatePassword, id, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error updating password")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteUser removes the account row. Audit history is intentionally left in
// place; see the audit_logs schema.
func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// CountUsers returns the total number of account records.
func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.CountUsers").Msg("error counting users")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
