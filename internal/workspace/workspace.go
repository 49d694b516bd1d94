// Package workspace holds the per-page link sessions: one ordered collection
// plus the drag and edit state machines that mutate it.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/metrics"
)

// ErrClosed is returned once a workspace has been evicted.
var ErrClosed = errors.New("workspace closed")

// State is a consistent read of a workspace for rendering.
type State struct {
	Links       []links.Link
	Dragged     int
	Dragging    bool
	Highlighted []int
	// DropAllowed mirrors DragOver: whether the list accepts drops at all.
	DropAllowed bool
	Mode        Mode
	EditIndex   int
}

// Workspace is one page session. Every transition runs to completion under a
// single lock, so concurrent requests from the same page never interleave.
// Nothing in a workspace outlives it.
type Workspace struct {
	ID      string
	Created time.Time

	mu    sync.Mutex
	links *links.Collection
	drag  *DragController
	edit  *EditController
	notes *Buffer

	prompts *Prompts
	// beginMu keeps one delete prompt opening at a time so each opener
	// receives its own prompt from prompts.Opened.
	beginMu sync.Mutex
	pendMu  sync.Mutex
	deletes map[string]chan error

	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger

	seenMu   sync.Mutex
	lastSeen time.Time
}

func newWorkspace(id string, now time.Time, d time.Duration, log *zap.Logger) *Workspace {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Workspace{
		ID:       id,
		Created:  now,
		links:    links.NewCollection(),
		notes:    NewBuffer(d),
		prompts:  NewPrompts(),
		deletes:  map[string]chan error{},
		ctx:      ctx,
		cancel:   cancel,
		log:      log.With(zap.String("workspace", id)),
		lastSeen: now,
	}
	w.drag = NewDragController(w.links, w.notes)
	w.edit = NewEditController(w.links, w.notes, w.prompts, &w.mu)
	return w
}

// State returns a snapshot for rendering.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	dragged, dragging := w.drag.Dragged()
	mode, idx := w.edit.Mode()
	return State{
		Links:       w.links.Links(),
		Dragged:     dragged,
		Dragging:    dragging,
		Highlighted: w.drag.Highlighted(),
		DropAllowed: w.drag.DragOver(),
		Mode:        mode,
		EditIndex:   idx,
	}
}

// Links returns the links in display order.
func (w *Workspace) Links() []links.Link {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.links.Links()
}

// Notifications drains the notifications raised since the last call.
func (w *Workspace) Notifications() []Notification {
	return w.notes.Drain()
}

// Add appends a link directly, bypassing the dialog.
func (w *Workspace) Add(name, url string) error {
	name, url = strings.TrimSpace(name), strings.TrimSpace(url)
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.links.Add(name, url)
	switch {
	case errors.Is(err, links.ErrEmptyField):
		w.notes.Notify(notice(Error, "Please provide both name and URL"))
	case errors.Is(err, links.ErrDuplicateName):
		w.notes.Notify(notice(Warning, fmt.Sprintf("A link named %q already exists", name)))
	case err == nil:
		w.notes.Notify(notice(Success, fmt.Sprintf("Link %q added successfully!", name)))
	}
	return w.observe("add", err)
}

// UpdateURL replaces the URL of the link at index directly.
func (w *Workspace) UpdateURL(index int, url string) error {
	url = strings.TrimSpace(url)
	w.mu.Lock()
	defer w.mu.Unlock()
	l, err := w.links.At(index)
	if err == nil {
		if url == "" {
			w.notes.Notify(notice(Error, "Please provide a URL"))
			return w.observe("update", links.ErrEmptyField)
		}
		err = w.links.UpdateURL(index, url)
	}
	if err == nil {
		w.notes.Notify(notice(Success, fmt.Sprintf("Link %q updated successfully!", l.Name)))
	}
	return w.observe("update", reportStale(w.notes, err))
}

// Remove deletes the link at index without asking. Callers that represent a
// person clicking a button go through BeginDelete instead.
func (w *Workspace) Remove(index int) (links.Link, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, err := w.links.Remove(index)
	if err == nil {
		w.notes.Notify(notice(Success, fmt.Sprintf("Link %q deleted successfully!", l.Name)))
	}
	return l, w.observe("delete", reportStale(w.notes, err))
}

// Reorder moves a link directly. A no-op move reports nothing.
func (w *Workspace) Reorder(from, to int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	moved, err := w.links.Reorder(from, to)
	if moved {
		w.notes.Notify(notice(Success, "Link order updated!"))
	}
	return w.observe("reorder", reportStale(w.notes, err))
}

// OpenCreate opens the add dialog.
func (w *Workspace) OpenCreate() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.edit.OpenCreate()
}

// OpenEdit opens the edit dialog for index.
func (w *Workspace) OpenEdit(index int) (Form, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.edit.OpenEdit(index)
}

// Mode returns the dialog state.
func (w *Workspace) Mode() (Mode, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.edit.Mode()
}

// Submit applies the open dialog.
func (w *Workspace) Submit(name, url string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	mode, _ := w.edit.Mode()
	op := "add"
	if mode == Editing {
		op = "update"
	}
	return w.observe(op, w.edit.Submit(name, url))
}

// Cancel closes the dialog.
func (w *Workspace) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.edit.Cancel()
}

// DragStart begins a drag from index.
func (w *Workspace) DragStart(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.drag.DragStart(index)
}

// DragEnter highlights a drop target.
func (w *Workspace) DragEnter(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drag.DragEnter(index)
}

// DragLeave clears a drop target highlight.
func (w *Workspace) DragLeave(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drag.DragLeave(index)
}

// Drop commits the open drag onto target.
func (w *Workspace) Drop(target int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	from, active := w.drag.Dragged()
	err := w.drag.Drop(target)
	if active && from != target {
		w.observe("reorder", err)
	}
	return err
}

// DragEnd closes the drag gesture.
func (w *Workspace) DragEnd() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drag.DragEnd()
}

// BeginDelete raises the delete confirmation for index and returns the prompt
// to show. The deletion itself waits in the background for AnswerPrompt.
func (w *Workspace) BeginDelete(index int) (PendingPrompt, error) {
	if w.ctx.Err() != nil {
		return PendingPrompt{}, ErrClosed
	}
	w.beginMu.Lock()
	defer w.beginMu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- w.edit.RequestDelete(w.ctx, index)
	}()

	select {
	case pp := <-w.prompts.Opened():
		w.pendMu.Lock()
		w.deletes[pp.ID] = done
		w.pendMu.Unlock()
		metrics.PromptsPending.Inc()
		return pp, nil
	case err := <-done:
		// The link was gone before anyone could be asked.
		return PendingPrompt{}, w.observe("delete", err)
	}
}

// AnswerPrompt resolves a delete confirmation and waits for the outcome.
func (w *Workspace) AnswerPrompt(ctx context.Context, id string, yes bool) error {
	w.pendMu.Lock()
	done, ok := w.deletes[id]
	delete(w.deletes, id)
	w.pendMu.Unlock()
	if !ok {
		return ErrPromptNotFound
	}
	metrics.PromptsPending.Dec()

	if err := w.prompts.Answer(id, yes); err != nil {
		return err
	}
	select {
	case err := <-done:
		if yes {
			return w.observe("delete", err)
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels pending prompts. Waiting deletions resolve as declined.
func (w *Workspace) Close() {
	w.cancel()
	w.pendMu.Lock()
	n := len(w.deletes)
	clear(w.deletes)
	w.pendMu.Unlock()
	metrics.PromptsPending.Sub(float64(n))
}

func (w *Workspace) touch(now time.Time) {
	w.seenMu.Lock()
	w.lastSeen = now
	w.seenMu.Unlock()
}

func (w *Workspace) seen() time.Time {
	w.seenMu.Lock()
	defer w.seenMu.Unlock()
	return w.lastSeen
}

func (w *Workspace) observe(op string, err error) error {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, links.ErrEmptyField):
		result = "empty_field"
	case errors.Is(err, links.ErrDuplicateName):
		result = "duplicate_name"
	case errors.Is(err, links.ErrIndexOutOfRange):
		result = "index_out_of_range"
	default:
		result = "error"
	}
	metrics.LinkOperations.WithLabelValues(op, result).Inc()
	if err != nil {
		w.log.Debug("link operation failed", zap.String("op", op), zap.String("result", result), zap.Error(err))
	} else {
		w.log.Debug("link operation", zap.String("op", op))
	}
	return err
}
