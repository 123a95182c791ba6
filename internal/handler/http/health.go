package http

import (
	"net/http"
	"time"

	"github.com/nexus-ide/nexus-api/internal/utils"
	"github.com/nexus-ide/nexus-api/models"
)

const serviceName = "nexus-api"

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Seconds(),
	}, http.StatusOK)
}

// serviceInfo answers the root route with a small self-description. The
// route sits behind the optional gate: authenticated callers get a greeting
// with their identity attached, anonymous callers the bare description.
func (h *Handler) serviceInfo(w http.ResponseWriter, r *http.Request) {
	info := models.ServiceInfo{
		Name:    serviceName,
		Version: "1.0.0",
		Status:  "running",
	}

	if identity, ok := utils.GetIdentityFromContext(r.Context()); ok {
		utils.WriteJSON(w, struct {
			models.ServiceInfo
			User models.Identity `json:"user"`
		}{ServiceInfo: info, User: identity}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, info, http.StatusOK)
}
