package http

import (
	"encoding/json"
	"net/http"

	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/utils"
	"github.com/nexus-ide/nexus-api/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in context on gated route")
		utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	user, err := h.services.UserService.GetProfile(ctx, identity.ID)
	if err != nil {
		log.Err(err).Msg("profile lookup failed")
		utils.WriteJSONError(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.UserResponse{User: user.ProfileView()}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in context on gated route")
		utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.UpdateProfile(ctx, identity.ID, req, requestInfo(r))
	if err != nil {
		log.Err(err).Msg("profile update failed")
		utils.WriteJSONError(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.UserMessageResponse{
		Message: "Profile updated successfully",
		User:    user.ProfileView(),
	}, http.StatusOK)
}

func (h *Handler) completeOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in context on gated route")
		utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	var req models.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.CompleteOnboarding(ctx, identity.ID, req, requestInfo(r))
	if err != nil {
		log.Err(err).Msg("onboarding completion failed")
		utils.WriteJSONError(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.UserMessageResponse{
		Message: "Onboarding completed successfully",
		User:    user.OnboardingView(),
	}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in context on gated route")
		utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.ChangePassword(ctx, identity.ID, req, requestInfo(r)); err != nil {
		log.Err(err).Msg("password change failed")
		utils.WriteJSONError(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Password changed successfully"}, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in context on gated route")
		utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	if err := h.services.UserService.DeleteAccount(ctx, identity.ID, requestInfo(r)); err != nil {
		log.Err(err).Msg("account deletion failed")
		utils.WriteJSONError(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Account deleted successfully"}, http.StatusOK)
}
