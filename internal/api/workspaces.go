package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/workspace"
)

type wsKey struct{}

// CreateWorkspaceRequest optionally seeds a new workspace with links.
type CreateWorkspaceRequest struct {
	Links []CreateLinkRequest `json:"links"`
}

// workspacesAPIHandler provides REST handlers for workspaces and their links.
type workspacesAPIHandler struct {
	workspaces *workspace.Registry
	logos      *links.LogoResolver
}

func (h *workspacesAPIHandler) withWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := h.workspaces.Get(chi.URLParam(r, "ws"))
		if err != nil {
			writeError(w, http.StatusNotFound, "workspace not found", CodeNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), wsKey{}, ws)))
	})
}

func workspaceFrom(r *http.Request) *workspace.Workspace {
	ws, _ := r.Context().Value(wsKey{}).(*workspace.Workspace)
	return ws
}

// Create starts a new workspace.
// POST /api/v1/workspaces
//
// An empty body creates an empty workspace. Seed links are added in order;
// the first failure aborts and the partially seeded workspace is discarded.
func (h *workspacesAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", CodeBadRequest)
		return
	}

	ws := h.workspaces.Create()
	for _, l := range req.Links {
		if err := ws.Add(l.Name, l.URL); err != nil {
			h.workspaces.Remove(ws.ID)
			h.fail(w, ws, err)
			return
		}
	}
	// Seeding is silent.
	ws.Notifications()

	writeJSON(w, http.StatusCreated, WorkspaceResponse{
		ID:    ws.ID,
		Links: toLinkResponses(ws.Links(), h.logos),
	})
}

// List returns the workspace's links in display order.
// GET /api/v1/workspaces/{ws}/links
func (h *workspacesAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	writeJSON(w, http.StatusOK, h.list(ws))
}

// AddLink appends a link.
// POST /api/v1/workspaces/{ws}/links
func (h *workspacesAPIHandler) AddLink(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", CodeBadRequest)
		return
	}
	if err := ws.Add(req.Name, req.URL); err != nil {
		h.fail(w, ws, err)
		return
	}
	h.mutated(w, http.StatusCreated, ws, func(ls []links.Link) (int, links.Link, bool) {
		i := slices.IndexFunc(ls, func(l links.Link) bool { return l.Name == strings.TrimSpace(req.Name) })
		if i < 0 {
			return 0, links.Link{}, false
		}
		return i, ls[i], true
	})
}

// UpdateLink replaces the URL of the link at index. The name is immutable.
// PUT /api/v1/workspaces/{ws}/links/{index}
func (h *workspacesAPIHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req UpdateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", CodeBadRequest)
		return
	}
	if err := ws.UpdateURL(index, req.URL); err != nil {
		h.fail(w, ws, err)
		return
	}
	h.mutated(w, http.StatusOK, ws, func(ls []links.Link) (int, links.Link, bool) {
		if index >= len(ls) {
			return 0, links.Link{}, false
		}
		return index, ls[index], true
	})
}

// DeleteLink removes the link at index without a confirmation prompt; the
// caller of an API is assumed to have confirmed already.
// DELETE /api/v1/workspaces/{ws}/links/{index}
func (h *workspacesAPIHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	removed, err := ws.Remove(index)
	if err != nil {
		h.fail(w, ws, err)
		return
	}
	h.mutated(w, http.StatusOK, ws, func([]links.Link) (int, links.Link, bool) {
		return index, removed, true
	})
}

// Reorder moves the link at from so it ends up at to.
// POST /api/v1/workspaces/{ws}/links/reorder
func (h *workspacesAPIHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", CodeBadRequest)
		return
	}
	if err := ws.Reorder(req.From, req.To); err != nil {
		h.fail(w, ws, err)
		return
	}
	writeJSON(w, http.StatusOK, h.list(ws))
}

func (h *workspacesAPIHandler) list(ws *workspace.Workspace) LinkListResponse {
	return LinkListResponse{
		Links:         toLinkResponses(ws.Links(), h.logos),
		Notifications: toNotificationResponses(ws.Notifications()),
	}
}

// mutated writes the list after a successful change. pick locates the link the
// change was about; another request may have moved it in the meantime, in
// which case the body carries the list alone.
func (h *workspacesAPIHandler) mutated(w http.ResponseWriter, status int, ws *workspace.Workspace, pick func([]links.Link) (int, links.Link, bool)) {
	ls := ws.Links()
	resp := LinkMutationResponse{
		Links:         toLinkResponses(ls, h.logos),
		Notifications: toNotificationResponses(ws.Notifications()),
	}
	if i, l, ok := pick(ls); ok {
		lr := toLinkResponse(i, l, h.logos)
		resp.Link = &lr
	}
	writeJSON(w, status, resp)
}

// fail writes err with the notifications it raised.
func (h *workspacesAPIHandler) fail(w http.ResponseWriter, ws *workspace.Workspace, err error) {
	status, code := classify(err)
	writeJSON(w, status, ErrorResponse{
		Error:         err.Error(),
		Code:          code,
		Notifications: toNotificationResponses(ws.Notifications()),
	})
}

func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 {
		writeError(w, http.StatusBadRequest, "index must be a non-negative integer", CodeBadRequest)
		return 0, false
	}
	return i, true
}
