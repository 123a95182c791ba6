package store

import (
	"context"
	"fmt"

	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/models"
)

// auditLogRepository is the PostgreSQL-backed implementation of
// [AuditLogRepository]. It appends immutable records to the "audit_logs"
// table; no update or delete statements exist in this package by design.
type auditLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuditLogRepository constructs an [AuditLogRepository] backed by the
// provided database connection and logger.
func NewAuditLogRepository(db *DB, logger *logger.Logger) AuditLogRepository {
	logger.Debug().Msg("creating audit log repository")
	return &auditLogRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts one audit record. The server-assigned id and timestamp are
// discarded: callers treat the trail as write-only.
func (r *auditLogRepository) Append(ctx context.Context, entry models.AuditLog) error {
	log := logger.FromContext(ctx)

	var (
		id        int64
		createdAt any
	)
	err := r.db.QueryRowContext(ctx, appendAuditLog,
		entry.UserID,
		string(entry.Action),
		nullIfEmpty(entry.Details),
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&id, &createdAt)
	if err != nil {
		log.Err(err).
			Str("func", "*auditLogRepository.Append").
			Str("action", string(entry.Action)).
			Msg("error appending audit log")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if id == 0 {
		return ErrAuditLogNotSaved
	}

	return nil
}
