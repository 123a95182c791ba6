package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.With(h.optionalAuth).Get("/", h.serviceInfo)
		r.Get("/api/health", h.health)
		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/login", h.login)
	})

	// routes behind the session gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/me", h.me)
		r.Post("/api/auth/logout", h.logout)

		r.Get("/api/users/profile", h.getProfile)
		r.Put("/api/users/profile", h.updateProfile)
		r.Put("/api/users/onboarding", h.completeOnboarding)
		r.Post("/api/users/change-password", h.changePassword)
		r.Delete("/api/users/account", h.deleteAccount)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
