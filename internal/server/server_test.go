package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-ide/nexus-api/internal/config"
	"github.com/nexus-ide/nexus-api/internal/handler"
	"github.com/nexus-ide/nexus-api/internal/logger"
)

func TestNewServer(t *testing.T) {
	handlers, err := handler.NewHandlers(nil, config.Server{HTTPAddress: ":0"}, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, config.Server{HTTPAddress: ":0"}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestNewServer_NoAddress(t *testing.T) {
	srv, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestNewHTTPServer(t *testing.T) {
	mux := http.NewServeMux()

	t.Run("address and handler are wired", func(t *testing.T) {
		s := newHTTPServer(mux, config.Server{HTTPAddress: "127.0.0.1:8080"}, logger.Nop())
		assert.Equal(t, "127.0.0.1:8080", s.server.Addr)
		assert.NotNil(t, s.server.Handler)
	})

	t.Run("request timeout wraps the handler", func(t *testing.T) {
		s := newHTTPServer(mux, config.Server{HTTPAddress: ":8080", RequestTimeout: time.Second}, logger.Nop())
		// TimeoutHandler replaces the raw mux
		assert.NotEqual(t, http.Handler(mux), s.server.Handler)
	})
}
