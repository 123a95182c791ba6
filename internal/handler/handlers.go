package handler

import (
	"github.com/nexus-ide/nexus-api/internal/config"
	"github.com/nexus-ide/nexus-api/internal/handler/http"
	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
