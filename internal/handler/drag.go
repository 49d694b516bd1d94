package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/joestump/linkly/internal/workspace"
)

// DragHandler relays browser drag-and-drop events to the workspace's drag
// controller. The page queues these requests (hx-sync) so drop always reaches
// the server before the drag-end that follows it.
type DragHandler struct {
	links *LinksHandler
	log   *zap.Logger
}

// NewDragHandler creates a new DragHandler.
func NewDragHandler(lh *LinksHandler, log *zap.Logger) *DragHandler {
	return &DragHandler{links: lh, log: log}
}

// Start handles POST /w/{ws}/drag/start.
func (h *DragHandler) Start(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	index, ok := h.index(w, r)
	if !ok {
		return
	}
	if err := ws.DragStart(index); err != nil {
		status := http.StatusNotFound
		if errors.Is(err, workspace.ErrDragInProgress) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Enter handles POST /w/{ws}/drag/enter.
func (h *DragHandler) Enter(w http.ResponseWriter, r *http.Request) {
	if index, ok := h.index(w, r); ok {
		workspaceFrom(r).DragEnter(index)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Leave handles POST /w/{ws}/drag/leave.
func (h *DragHandler) Leave(w http.ResponseWriter, r *http.Request) {
	if index, ok := h.index(w, r); ok {
		workspaceFrom(r).DragLeave(index)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Drop handles POST /w/{ws}/drag/drop and re-renders the list. The drag stays
// open until drag-end, but its source and target indexes no longer name the
// same cards after a reorder, so the list is rendered without drag styling.
func (h *DragHandler) Drop(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	index, ok := h.index(w, r)
	if !ok {
		return
	}
	if err := ws.Drop(index); err != nil {
		h.log.Debug("drop rejected", zap.String("workspace", ws.ID), zap.Error(err))
	}
	s := ws.State()
	s.Dragging, s.Highlighted = false, nil
	renderFragment(w, "list_update", h.links.updateFrom(ws, s))
}

// End handles POST /w/{ws}/drag/end. It always succeeds, covering drags
// released outside the list.
func (h *DragHandler) End(w http.ResponseWriter, r *http.Request) {
	workspaceFrom(r).DragEnd()
	w.WriteHeader(http.StatusNoContent)
}

func (h *DragHandler) index(w http.ResponseWriter, r *http.Request) (int, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return 0, false
	}
	return indexParam(w, r.FormValue("index"))
}
