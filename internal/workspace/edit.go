package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/joestump/linkly/internal/links"
)

// ErrNoSession is returned by Submit when no add or edit form is open.
var ErrNoSession = errors.New("no add or edit form is open")

// Mode is the state of the add/edit form.
type Mode int

const (
	Idle Mode = iota
	Creating
	Editing
)

func (m Mode) String() string {
	switch m {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

// Form is what the add/edit dialog shows when it opens.
type Form struct {
	Title        string
	Name         string
	URL          string
	NameEditable bool
	SubmitLabel  string
}

// Confirmer asks the user a yes/no question. It returns true only for an
// explicit yes; cancel, backdrop click and Escape all come back false.
type Confirmer interface {
	Confirm(ctx context.Context, message, title string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message, title string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, message, title string) (bool, error) {
	return f(ctx, message, title)
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// EditController drives the add/edit dialog and the delete confirmation.
type EditController struct {
	links   *links.Collection
	notify  Notifier
	confirm Confirmer
	// mu guards links during RequestDelete, which must not hold it while the
	// user is answering.
	mu sync.Locker

	mode  Mode
	index int
	// name is the record being edited, re-checked on submit in case the list
	// was reordered while the form was open.
	name string
}

// NewEditController returns an idle controller. mu may be nil when the
// controller is never shared between goroutines.
func NewEditController(c *links.Collection, n Notifier, conf Confirmer, mu sync.Locker) *EditController {
	if mu == nil {
		mu = noopLocker{}
	}
	return &EditController{links: c, notify: n, confirm: conf, mu: mu}
}

// Mode returns the current state and, while editing, the targeted index.
func (e *EditController) Mode() (Mode, int) {
	return e.mode, e.index
}

// OpenCreate opens a blank add form. An already open form is discarded.
func (e *EditController) OpenCreate() Form {
	e.mode, e.index, e.name = Creating, 0, ""
	return Form{Title: "Add New Link", NameEditable: true, SubmitLabel: "Add Link"}
}

// OpenEdit opens the form pre-filled with the link at index. The name is shown
// but cannot be edited.
func (e *EditController) OpenEdit(index int) (Form, error) {
	l, err := e.links.At(index)
	if err != nil {
		return Form{}, reportStale(e.notify, err)
	}
	e.mode, e.index, e.name = Editing, index, l.Name
	return Form{Title: "Edit Link", Name: l.Name, URL: l.URL, SubmitLabel: "Save Changes"}, nil
}

// Cancel closes the form without touching the collection.
func (e *EditController) Cancel() {
	e.mode, e.index, e.name = Idle, 0, ""
}

// Submit applies the open form. Inputs are trimmed. A failed add keeps the
// form open; everything else returns to Idle. While editing, name is ignored.
func (e *EditController) Submit(name, url string) error {
	name, url = strings.TrimSpace(name), strings.TrimSpace(url)

	switch e.mode {
	case Creating:
		if err := e.links.Add(name, url); err != nil {
			switch {
			case errors.Is(err, links.ErrEmptyField):
				e.notify.Notify(notice(Error, "Please provide both name and URL"))
			case errors.Is(err, links.ErrDuplicateName):
				e.notify.Notify(notice(Warning, fmt.Sprintf("A link named %q already exists", name)))
			}
			return err
		}
		e.Cancel()
		e.notify.Notify(notice(Success, fmt.Sprintf("Link %q added successfully!", name)))
		return nil

	case Editing:
		if url == "" {
			e.notify.Notify(notice(Error, "Please provide a URL"))
			return links.ErrEmptyField
		}
		index, want := e.index, e.name
		l, err := e.links.At(index)
		if err == nil && l.Name != want {
			err = fmt.Errorf("%w: %q moved", links.ErrIndexOutOfRange, want)
		}
		if err == nil {
			err = e.links.UpdateURL(index, url)
		}
		if err != nil {
			e.Cancel()
			return reportStale(e.notify, err)
		}
		e.Cancel()
		e.notify.Notify(notice(Success, fmt.Sprintf("Link %q updated successfully!", l.Name)))
		return nil

	default:
		return ErrNoSession
	}
}

// RequestDelete asks for confirmation and removes the link at index only on
// an explicit yes. A declined prompt changes nothing and reports nothing.
// The caller must not hold mu.
func (e *EditController) RequestDelete(ctx context.Context, index int) error {
	e.mu.Lock()
	l, err := e.links.At(index)
	if err != nil {
		err = reportStale(e.notify, err)
	}
	e.mu.Unlock()
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("This action cannot be undone. The link %q will be permanently removed.", l.Name)
	ok, err := e.confirm.Confirm(ctx, msg, "Delete Link?")
	if err != nil || !ok {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// The list may have been reordered while the prompt was open; only delete
	// the record the user was asked about.
	if cur, err := e.links.At(index); err != nil || cur.Name != l.Name {
		return reportStale(e.notify, fmt.Errorf("%w: %q moved", links.ErrIndexOutOfRange, l.Name))
	}
	if _, err := e.links.Remove(index); err != nil {
		return reportStale(e.notify, err)
	}
	e.notify.Notify(notice(Success, fmt.Sprintf("Link %q deleted successfully!", l.Name)))
	return nil
}
