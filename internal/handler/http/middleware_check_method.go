package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexus-ide/nexus-api/internal/utils"
)

// CheckHTTPMethod returns an [http.HandlerFunc] meant to be registered as
// the router's MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 whenever a path matches a registered route but the method
// does not. This override responds 404 with the uniform JSON error body
// instead, hiding the existence of the route from callers probing with
// unsupported methods. If the method IS registered for the matched route,
// the request is forwarded to the router's normal pipeline.
//
// Only exact pattern matches are considered; parameterised segments are not
// expanded during the check.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		var foundRoute chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == requestedURL {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			utils.WriteJSONError(w, "not found", http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
