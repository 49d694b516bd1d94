package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/workspace"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Workspaces *workspace.Registry
	Logos      *links.LogoResolver
}

// NewAPIRouter creates a chi sub-router for /api/v1. It drives the same
// workspaces as the page, so a workspace created here can be inspected there
// and vice versa.
func NewAPIRouter(deps Deps) chi.Router {
	logos := deps.Logos
	if logos == nil {
		logos = links.NewLogoResolver("")
	}
	h := &workspacesAPIHandler{workspaces: deps.Workspaces, logos: logos}

	r := chi.NewRouter()

	// All API responses are JSON.
	r.Use(jsonContentType)

	r.Post("/workspaces", h.Create)
	r.Route("/workspaces/{ws}", func(r chi.Router) {
		r.Use(h.withWorkspace)
		r.Get("/links", h.List)
		r.Post("/links", h.AddLink)
		r.Post("/links/reorder", h.Reorder)
		r.Put("/links/{index}", h.UpdateLink)
		r.Delete("/links/{index}", h.DeleteLink)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", CodeNotFound)
	})

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
