package http

import (
	"time"

	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger

	// startedAt anchors the uptime reported by the health endpoint.
	startedAt time.Time
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		logger:    logger,
		startedAt: time.Now(),
	}
}
