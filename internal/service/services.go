package service

import (
	"github.com/nexus-ide/nexus-api/internal/config"
	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/store"
)

// Services aggregates every business-logic service of the application.
type Services struct {
	AuthService AuthService
	UserService UserService
}

// NewServices wires all services to their repositories and configuration.
func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, storages.AuditLogRepository, cfg.App, logger),
		UserService: NewUserService(storages.UserRepository, storages.AuditLogRepository, cfg.App, logger),
	}
}
