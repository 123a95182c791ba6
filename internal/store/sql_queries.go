package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nexus-ide/nexus-api/models"
)

// userColumns is the canonical column list scanned into models.User.
// Every query returning a full account row uses this order.
const userColumns = `id, email, password_hash, name, avatar, role, languages, theme, ai_provider,
		has_completed_onboarding, email_verified, is_active, created_at, updated_at, last_login_at`

const (
	createUser = `INSERT INTO users (id, email, password_hash, name)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
	FROM users
	WHERE LOWER(email) = LOWER($1);`

	findUserByID = `SELECT ` + userColumns + `
	FROM users
	WHERE id = $1;`

	updateLastLogin = `UPDATE users
	SET last_login_at = $2, updated_at = NOW()
	WHERE id = $1;`

	updatePassword = `UPDATE users
	SET password_hash = $2, updated_at = NOW()
	WHERE id = $1;`

	deleteUser = `DELETE FROM users
	WHERE id = $1;`

	countUsers = `SELECT COUNT(*) FROM users;`

	appendAuditLog = `INSERT INTO audit_logs (user_id, action, details, ip_address, user_agent)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at;`
)

// psql is the statement builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUpdateUserQuery builds a partial UPDATE for the users table from the
// non-nil fields of update. updated_at is always stamped; the full updated
// row is returned so the caller can hand back the canonical record.
//
// Returns ErrBuildingSQLQuery when the update carries no fields at all.
func buildUpdateUserQuery(id string, update models.UserUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	builder := psql.Update("users").Set("updated_at", sq.Expr("NOW()"))

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Avatar != nil {
		builder = builder.Set("avatar", *update.Avatar)
	}
	if update.Role != nil {
		builder = builder.Set("role", *update.Role)
	}
	if update.Languages != nil {
		builder = builder.Set("languages", stringSlice(update.Languages))
	}
	if update.Theme != nil {
		builder = builder.Set("theme", *update.Theme)
	}
	if update.AIProvider != nil {
		builder = builder.Set("ai_provider", *update.AIProvider)
	}
	if update.HasCompletedOnboarding != nil {
		builder = builder.Set("has_completed_onboarding", *update.HasCompletedOnboarding)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// stringSlice maps a []string onto a JSONB column. The zero-length slice is
// stored as the empty JSON array, never as NULL.
type stringSlice []string

// Scan implements [sql.Scanner]. NULL scans as an empty slice.
func (s *stringSlice) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("%w: unsupported languages type %T", ErrScanningRow, src)
	}
}

// Value implements [driver.Valuer].
func (s stringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = stringSlice{}
	}
	return json.Marshal(s)
}
