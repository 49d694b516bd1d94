package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/linkly/internal/links"
)

func seeded(names ...string) *links.Collection {
	c := links.NewCollection()
	for _, n := range names {
		_ = c.Add(n, "https://"+n+".example")
	}
	return c
}

func order(c *links.Collection) []string {
	var out []string
	for _, l := range c.Links() {
		out = append(out, l.Name)
	}
	return out
}

func TestDrag_DropReorders(t *testing.T) {
	c := seeded("A", "B", "C")
	buf := NewBuffer(DefaultDuration)
	d := NewDragController(c, buf)

	require.NoError(t, d.DragStart(0))
	d.DragEnter(2)
	assert.True(t, d.DragOver())
	require.NoError(t, d.Drop(2))

	assert.Equal(t, []string{"B", "C", "A"}, order(c))
	notes := buf.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, Success, notes[0].Kind)
	assert.Equal(t, "Link order updated!", notes[0].Message)
	assert.Equal(t, DefaultDuration, notes[0].Duration)

	// Drop leaves the drag open; only DragEnd clears it.
	idx, active := d.Dragged()
	assert.True(t, active)
	assert.Equal(t, 0, idx)

	d.DragEnd()
	_, active = d.Dragged()
	assert.False(t, active)
	assert.Empty(t, d.Highlighted())
}

func TestDrag_DropOnSelfIsSilent(t *testing.T) {
	c := seeded("A", "B", "C")
	buf := NewBuffer(DefaultDuration)
	d := NewDragController(c, buf)

	require.NoError(t, d.DragStart(1))
	require.NoError(t, d.Drop(1))
	assert.Equal(t, []string{"A", "B", "C"}, order(c))
	assert.Empty(t, buf.Drain())
}

func TestDrag_DropWithoutStartIsNoop(t *testing.T) {
	c := seeded("A", "B")
	buf := NewBuffer(DefaultDuration)
	d := NewDragController(c, buf)

	require.NoError(t, d.Drop(1))
	assert.Equal(t, []string{"A", "B"}, order(c))
	assert.Empty(t, buf.Drain())
}

func TestDrag_StartWhileActive(t *testing.T) {
	d := NewDragController(seeded("A", "B"), NewBuffer(DefaultDuration))
	require.NoError(t, d.DragStart(0))
	assert.ErrorIs(t, d.DragStart(1), ErrDragInProgress)

	d.DragEnd()
	assert.NoError(t, d.DragStart(1))
}

func TestDrag_StartOutOfRange(t *testing.T) {
	d := NewDragController(seeded("A"), NewBuffer(DefaultDuration))
	assert.ErrorIs(t, d.DragStart(3), links.ErrIndexOutOfRange)
	_, active := d.Dragged()
	assert.False(t, active)
}

func TestDrag_CancelledDragClearsState(t *testing.T) {
	c := seeded("A", "B", "C")
	buf := NewBuffer(DefaultDuration)
	d := NewDragController(c, buf)

	require.NoError(t, d.DragStart(2))
	d.DragEnter(0)
	d.DragEnter(1)
	d.DragLeave(0)
	assert.Equal(t, []int{1}, d.Highlighted())

	d.DragEnd()
	_, active := d.Dragged()
	assert.False(t, active)
	assert.Empty(t, d.Highlighted())
	assert.Equal(t, []string{"A", "B", "C"}, order(c))
	assert.Empty(t, buf.Drain())
}

func TestDrag_StaleDropReportsError(t *testing.T) {
	c := seeded("A", "B", "C")
	buf := NewBuffer(DefaultDuration)
	d := NewDragController(c, buf)

	require.NoError(t, d.DragStart(2))
	_, err := c.Remove(2)
	require.NoError(t, err)

	assert.ErrorIs(t, d.Drop(0), links.ErrIndexOutOfRange)
	notes := buf.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, Error, notes[0].Kind)
	assert.Equal(t, []string{"A", "B"}, order(c))
}
