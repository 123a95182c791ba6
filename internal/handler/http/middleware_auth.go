package http

import (
	"context"
	"net/http"

	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/utils"
)

// unauthenticatedMessage is the single body written for every gate
// rejection. Missing header, malformed header, bad token, expired token,
// unknown or deactivated account all look identical to the caller.
const unauthenticatedMessage = "invalid or expired token"

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, verifies it via
// AuthService.Authenticate — which also re-resolves the account state, so a
// deactivated or deleted account is rejected even with a structurally valid
// token — and on success stores the authenticated identity in the request
// context under [utils.IdentityCtxKey] before delegating to the next
// handler.
//
// Every rejection yields the same 401 response with the same JSON body; the
// reason is only logged. This keeps probing responses indistinguishable.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := bearerToken(r)
		if err != nil {
			log.Err(err).Send()
			utils.WriteJSONError(w, unauthenticatedMessage, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("authentication rejected")
			utils.WriteJSONError(w, unauthenticatedMessage, http.StatusUnauthorized)
			return
		}

		// Store the identity in the context so downstream handlers can
		// retrieve it without re-verifying the token.
		ctx = context.WithValue(ctx, utils.IdentityCtxKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth attaches the authenticated identity to the context when a
// valid bearer token is present and lets the request proceed anonymously
// otherwise. It never rejects: an invalid token on an optional route
// behaves exactly like no token at all.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx = context.WithValue(ctx, utils.IdentityCtxKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token string from the request's "Authorization"
// header.
//
// The header is expected to follow the standard format:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrEmptyAuthorizationHeader] — if the header is absent.
//   - [ErrInvalidAuthorizationHeader] — if the header cannot be split into
//     two space-separated parts.
//   - [ErrEmptyToken] — if the token part exists but is an empty string.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
