package service

import (
	"context"
	"time"

	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/store"
	"github.com/nexus-ide/nexus-api/models"
)

// defaultAuditTimeout bounds a single audit append when no timeout is
// configured.
const defaultAuditTimeout = 2 * time.Second

// auditRecorder appends account lifecycle events to the audit trail.
//
// Appends are best-effort: a failure is logged and swallowed, never
// propagated, so a broken audit backend cannot take the primary operation
// down with it. Each append runs under its own bounded timeout and is
// detached from the caller's cancellation, so an audit write that follows a
// completed operation still lands even if the inbound request context is
// already done.
type auditRecorder struct {
	auditLogs store.AuditLogRepository
	timeout   time.Duration
}

func newAuditRecorder(auditLogs store.AuditLogRepository, timeout time.Duration) *auditRecorder {
	if timeout <= 0 {
		timeout = defaultAuditTimeout
	}
	return &auditRecorder{auditLogs: auditLogs, timeout: timeout}
}

// record appends one audit entry for the given account and action.
// userID may be nil when the actor could not be resolved.
func (a *auditRecorder) record(ctx context.Context, userID *string, action models.AuditAction, details string, info models.RequestInfo) {
	log := logger.FromContext(ctx)

	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
	defer cancel()

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: info.IPAddress,
		UserAgent: info.UserAgent,
	}
	if err := a.auditLogs.Append(auditCtx, entry); err != nil {
		log.Err(err).
			Str("func", "auditRecorder.record").
			Str("action", string(action)).
			Msg("audit append failed")
	}
}
