package store

import (
	"context"
	"fmt"

	"github.com/nexus-ide/nexus-api/internal/config"
	"github.com/nexus-ide/nexus-api/internal/logger"
)

// Storages bundles every repository backed by the shared database handle.
type Storages struct {
	UserRepository     UserRepository
	AuditLogRepository AuditLogRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories onto the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		AuditLogRepository: NewAuditLogRepository(db, log),
	}, nil
}
