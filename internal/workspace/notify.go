package workspace

import (
	"errors"
	"sync"
	"time"

	"github.com/joestump/linkly/internal/links"
)

// Kind classifies a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// DefaultDuration is how long a notification stays up when no duration is given.
const DefaultDuration = 4 * time.Second

// Persistent keeps a notification up until the user dismisses it.
const Persistent time.Duration = 0

// Notification is one user-facing message.
type Notification struct {
	Kind     Kind
	Message  string
	Duration time.Duration
}

// Notifier receives notifications produced by controller transitions.
type Notifier interface {
	Notify(n Notification)
}

// Buffer is a Notifier that collects notifications until they are drained,
// typically once per HTTP response.
type Buffer struct {
	mu       sync.Mutex
	duration time.Duration
	items    []Notification
}

// NewBuffer returns a Buffer that fills in d for notifications without a
// duration. A negative d means DefaultDuration.
func NewBuffer(d time.Duration) *Buffer {
	if d < 0 {
		d = DefaultDuration
	}
	return &Buffer{duration: d}
}

// Notify implements Notifier. A negative Duration is replaced by the buffer
// default; zero is kept and means persistent.
func (b *Buffer) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n.Duration < 0 {
		n.Duration = b.duration
	}
	b.items = append(b.items, n)
}

// Drain returns the buffered notifications and empties the buffer.
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}

// notice builds a notification that takes the sink's default duration.
func notice(k Kind, msg string) Notification {
	return Notification{Kind: k, Message: msg, Duration: -1}
}

// MsgStaleLink is reported when an index no longer refers to a link.
const MsgStaleLink = "That link no longer exists. The list has been refreshed."

// reportStale turns an out-of-range failure into an error notification.
// Other errors pass through untouched.
func reportStale(n Notifier, err error) error {
	if errors.Is(err, links.ErrIndexOutOfRange) {
		n.Notify(notice(Error, MsgStaleLink))
	}
	return err
}
