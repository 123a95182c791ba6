package http

import (
	"errors"
	"net/http"

	"github.com/nexus-ide/nexus-api/internal/service"
	"github.com/nexus-ide/nexus-api/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:         http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrAccountDeactivated: http.StatusForbidden,
	service.ErrUnauthenticated:    http.StatusUnauthorized,
	service.ErrPasswordNotSet:     http.StatusBadRequest,

	store.ErrEmailTaken:   http.StatusConflict,
	store.ErrUserNotFound: http.StatusNotFound,

	store.ErrAuditLogNotSaved:   http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError picks the body of the uniform {"error": ...} response.
// Validation failures surface their field-level details; other mapped
// sentinels surface their own message; everything unmapped is an internal
// failure whose details never leave the server.
func messageFromError(err error) string {
	if errors.Is(err, service.ErrValidation) {
		return err.Error()
	}
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(http.StatusInternalServerError)
}
