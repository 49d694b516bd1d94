package workspace

import (
	"errors"
	"fmt"
	"slices"

	"github.com/joestump/linkly/internal/links"
)

// ErrDragInProgress is returned by DragStart while another drag is still open.
var ErrDragInProgress = errors.New("a drag is already in progress")

// DragController tracks one drag-and-drop reorder gesture at a time.
//
// The drop event fires before the drag-end event on the source card, so Drop
// leaves the dragged index in place and DragEnd is the only transition that
// clears it. A drag released outside any card only ever sees DragEnd.
type DragController struct {
	links  *links.Collection
	notify Notifier

	dragged     int
	active      bool
	highlighted map[int]bool
}

// NewDragController returns an idle controller over c.
func NewDragController(c *links.Collection, n Notifier) *DragController {
	return &DragController{links: c, notify: n, highlighted: map[int]bool{}}
}

// Dragged returns the index being dragged, if any.
func (d *DragController) Dragged() (int, bool) {
	return d.dragged, d.active
}

// Highlighted returns the drop targets currently highlighted, ascending.
func (d *DragController) Highlighted() []int {
	out := make([]int, 0, len(d.highlighted))
	for i := range d.highlighted {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// DragStart begins a drag from index.
func (d *DragController) DragStart(index int) error {
	if d.active {
		return fmt.Errorf("%w: dragging %d", ErrDragInProgress, d.dragged)
	}
	if _, err := d.links.At(index); err != nil {
		return err
	}
	d.dragged, d.active = index, true
	return nil
}

// DragEnter highlights index as a drop target.
func (d *DragController) DragEnter(index int) {
	d.highlighted[index] = true
}

// DragLeave removes the highlight from index.
func (d *DragController) DragLeave(index int) {
	delete(d.highlighted, index)
}

// DragOver reports whether a drop is accepted here. It always is; the caller
// uses the answer to suppress the browser's default refusal.
func (d *DragController) DragOver() bool { return true }

// Drop commits the reorder onto target. Nothing happens when no drag is open
// or the card was dropped on itself.
func (d *DragController) Drop(target int) error {
	if !d.active || d.dragged == target {
		return nil
	}
	moved, err := d.links.Reorder(d.dragged, target)
	if err != nil {
		return reportStale(d.notify, err)
	}
	if moved {
		d.notify.Notify(notice(Success, "Link order updated!"))
	}
	return nil
}

// DragEnd closes the gesture whether or not a drop happened.
func (d *DragController) DragEnd() {
	d.dragged, d.active = 0, false
	clear(d.highlighted)
}
