package handler

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/joestump/linkly/internal/api"
	"github.com/joestump/linkly/internal/build"
	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/logging"
	"github.com/joestump/linkly/internal/workspace"
	"github.com/joestump/linkly/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	Workspaces     *workspace.Registry
	Logos          *links.LogoResolver
	Logger         *zap.Logger
	// Ping reports whether the session database is reachable.
	Ping func(ctx context.Context) error
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(log))
	r.Use(middleware.Recoverer)

	// Static assets (embedded). fs.Sub so the file server sees js/linkly.js
	// directly, not static/js/... paths.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	r.Get("/healthz", healthz(deps.Ping))
	r.Handle("/metrics", promhttp.Handler())

	// JSON API shares the workspaces with the page but not the cookie session.
	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{
		Workspaces: deps.Workspaces,
		Logos:      deps.Logos,
	}))

	lh := NewLinksHandler(deps.Workspaces, deps.Logos, deps.SessionManager, log)
	dh := NewDragHandler(lh, log)
	th := NewThemeHandler(deps.SessionManager)

	r.Group(func(r chi.Router) {
		r.Use(deps.SessionManager.LoadAndSave)

		r.Get("/", lh.Index)
		r.Post("/theme", th.Toggle)

		r.Route("/w/{ws}", func(r chi.Router) {
			r.Use(lh.WithWorkspace)

			r.Get("/links", lh.List)
			// NOTE: new, submit and cancel MUST be registered before /{index}
			// patterns so chi does not read them as an index.
			r.Get("/links/new", lh.New)
			r.Post("/links/submit", lh.Submit)
			r.Post("/links/cancel", lh.Cancel)
			r.Get("/links/{index}/edit", lh.Edit)
			r.Get("/links/{index}/confirm-delete", lh.ConfirmDelete)
			r.Post("/prompts/{id}", lh.Answer)

			r.Post("/drag/start", dh.Start)
			r.Post("/drag/enter", dh.Enter)
			r.Post("/drag/leave", dh.Leave)
			r.Post("/drag/drop", dh.Drop)
			r.Post("/drag/end", dh.End)
		})
	})

	return r
}

func healthz(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"status": "ok", "version": build.Version, "commit": build.Commit}
		status := http.StatusOK
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				body["status"] = "unavailable"
				body["error"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
