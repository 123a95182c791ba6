package http

import (
	"encoding/json"
	"net/http"

	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/utils"
	"github.com/nexus-ide/nexus-api/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.Signup(ctx, req, requestInfo(r))
	if err != nil {
		log.Err(err).Msg("signup failed")
		utils.WriteJSONError(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Message: "User created successfully",
		User:    user.PublicView(),
		Token:   token.SignedString,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req, requestInfo(r))
	if err != nil {
		log.Err(err).Msg("login failed")
		utils.WriteJSONError(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Message: "Login successful",
		User:    user.LoginView(),
		Token:   token.SignedString,
	}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in context on gated route")
		utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.GetCurrentUser(ctx, identity.ID)
	if err != nil {
		log.Err(err).Msg("current user lookup failed")
		utils.WriteJSONError(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.UserResponse{User: user.CurrentUserView()}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in context on gated route")
		utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.Logout(ctx, identity.ID, requestInfo(r)); err != nil {
		log.Err(err).Msg("logout failed")
		utils.WriteJSONError(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Logout successful"}, http.StatusOK)
}

// requestInfo captures the request identity strings recorded in the audit
// trail. RemoteAddr already holds the client IP resolved by the RealIP
// middleware.
func requestInfo(r *http.Request) models.RequestInfo {
	return models.RequestInfo{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
