package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/view"
	"github.com/joestump/linkly/internal/workspace"
)

type ctxKey struct{}

// IndexPage is the template data for the link list page.
type IndexPage struct {
	BasePage
	WorkspaceID string
	ListUpdate
}

// ModalPage is the template data for the add/edit dialog.
type ModalPage struct {
	WorkspaceID string
	Form        workspace.Form
}

// PromptPage is the template data for the confirmation dialog.
type PromptPage struct {
	WorkspaceID string
	Prompt      workspace.PendingPrompt
}

// LinksHandler serves the page and every gesture on it.
type LinksHandler struct {
	workspaces *workspace.Registry
	logos      *links.LogoResolver
	sessions   *scs.SessionManager
	log        *zap.Logger
}

// NewLinksHandler creates a new LinksHandler.
func NewLinksHandler(reg *workspace.Registry, logos *links.LogoResolver, sm *scs.SessionManager, log *zap.Logger) *LinksHandler {
	return &LinksHandler{workspaces: reg, logos: logos, sessions: sm, log: log}
}

// WithWorkspace loads the {ws} workspace into the request context. A missing
// workspace means the page outlived its session; HTMX is told to reload.
func (h *LinksHandler) WithWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := h.workspaces.Get(chi.URLParam(r, "ws"))
		if err != nil {
			if isHTMX(r) {
				w.Header().Set("HX-Refresh", "true")
			}
			http.Error(w, "this page has expired, reload to start again", http.StatusGone)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, ws)))
	})
}

func workspaceFrom(r *http.Request) *workspace.Workspace {
	ws, _ := r.Context().Value(ctxKey{}).(*workspace.Workspace)
	return ws
}

// Index handles GET /. Every load starts a new, empty workspace; the links
// from a previous load are not carried over.
func (h *LinksHandler) Index(w http.ResponseWriter, r *http.Request) {
	ws := h.workspaces.Create()
	data := IndexPage{
		BasePage:    BasePage{Theme: themeFromRequest(h.sessions, r)},
		WorkspaceID: ws.ID,
		ListUpdate:  h.update(ws),
	}
	render(w, "index.html", data)
}

// List handles GET /w/{ws}/links.
func (h *LinksHandler) List(w http.ResponseWriter, r *http.Request) {
	h.writeUpdate(w, workspaceFrom(r))
}

// New handles GET /w/{ws}/links/new and opens the add dialog.
func (h *LinksHandler) New(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	renderFragment(w, "link_modal", ModalPage{WorkspaceID: ws.ID, Form: ws.OpenCreate()})
}

// Edit handles GET /w/{ws}/links/{index}/edit and opens the edit dialog.
func (h *LinksHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	index, ok := indexParam(w, chi.URLParam(r, "index"))
	if !ok {
		return
	}
	form, err := ws.OpenEdit(index)
	if err != nil {
		h.retargetList(w, ws)
		return
	}
	renderFragment(w, "link_modal", ModalPage{WorkspaceID: ws.ID, Form: form})
}

// Submit handles POST /w/{ws}/links/submit. The list is always re-rendered;
// the dialog only closes when the submit went through.
func (h *LinksHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err := ws.Submit(r.FormValue("name"), r.FormValue("url"))
	switch {
	case err == nil:
		trigger(w, map[string]any{"closeModal": nil})
	case errors.Is(err, workspace.ErrNoSession):
		http.Error(w, "no form is open", http.StatusConflict)
		return
	case errors.Is(err, links.ErrIndexOutOfRange):
		trigger(w, map[string]any{"closeModal": nil})
	}
	h.writeUpdate(w, ws)
}

// Cancel handles POST /w/{ws}/links/cancel: cancel button, backdrop click and
// Escape all land here.
func (h *LinksHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	workspaceFrom(r).Cancel()
	trigger(w, map[string]any{"closeModal": nil})
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmDelete handles GET /w/{ws}/links/{index}/confirm-delete. It opens the
// confirmation prompt; the delete happens when the prompt is answered.
func (h *LinksHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	index, ok := indexParam(w, chi.URLParam(r, "index"))
	if !ok {
		return
	}
	pp, err := ws.BeginDelete(index)
	if err != nil {
		h.log.Debug("delete prompt not opened", zap.String("workspace", ws.ID), zap.Error(err))
		h.retargetList(w, ws)
		return
	}
	renderFragment(w, "confirm_dialog", PromptPage{WorkspaceID: ws.ID, Prompt: pp})
}

// Answer handles POST /w/{ws}/prompts/{id} with answer=yes|no. Anything but
// "yes" declines.
func (h *LinksHandler) Answer(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	yes := r.FormValue("answer") == "yes"
	err := ws.AnswerPrompt(r.Context(), chi.URLParam(r, "id"), yes)
	if errors.Is(err, workspace.ErrPromptNotFound) {
		trigger(w, map[string]any{"closeDialog": nil})
		http.Error(w, "prompt not found", http.StatusNotFound)
		return
	}
	if err != nil && !errors.Is(err, links.ErrIndexOutOfRange) {
		h.log.Warn("delete prompt failed", zap.String("workspace", ws.ID), zap.Error(err))
	}
	trigger(w, map[string]any{"closeDialog": nil})
	h.writeUpdate(w, ws)
}

func (h *LinksHandler) update(ws *workspace.Workspace) ListUpdate {
	return h.updateFrom(ws, ws.State())
}

func (h *LinksHandler) updateFrom(ws *workspace.Workspace, s workspace.State) ListUpdate {
	return ListUpdate{
		List:   view.Project(ws.ID, s, h.logos),
		Toasts: view.Toasts(ws.Notifications()),
	}
}

func (h *LinksHandler) writeUpdate(w http.ResponseWriter, ws *workspace.Workspace) {
	renderFragment(w, "list_update", h.update(ws))
}

// retargetList answers a request aimed at a dialog with a list refresh
// instead, e.g. when the link it referred to is gone.
func (h *LinksHandler) retargetList(w http.ResponseWriter, ws *workspace.Workspace) {
	w.Header().Set("HX-Retarget", "#links")
	w.Header().Set("HX-Reswap", "innerHTML")
	h.writeUpdate(w, ws)
}

func indexParam(w http.ResponseWriter, s string) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return 0, false
	}
	return i, true
}
