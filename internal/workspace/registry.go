package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joestump/linkly/internal/metrics"
)

// ErrNotFound is returned for an unknown or evicted workspace id.
var ErrNotFound = errors.New("workspace not found")

// Options configures a Registry.
type Options struct {
	// IdleTimeout evicts workspaces not used for this long. Zero disables
	// idle eviction.
	IdleTimeout time.Duration
	// Max caps live workspaces; the least recently used is evicted first.
	// Zero means no cap.
	Max int
	// NotifyDuration is the default notification lifetime.
	NotifyDuration time.Duration
	Logger         *zap.Logger
}

// Registry keeps the live workspaces in memory. A page load creates one; a
// reload creates another and the old one is left to expire.
type Registry struct {
	opts Options
	log  *zap.Logger
	now  func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewRegistry returns an empty registry.
func NewRegistry(opts Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{opts: opts, log: log, now: time.Now, items: map[string]*Workspace{}}
}

// Create starts a new, empty workspace.
func (r *Registry) Create() *Workspace {
	now := r.now()
	w := newWorkspace(uuid.NewString(), now, r.opts.NotifyDuration, r.log)

	r.mu.Lock()
	r.items[w.ID] = w
	var evicted []*Workspace
	if r.opts.Max > 0 {
		for len(r.items) > r.opts.Max {
			evicted = append(evicted, r.evictOldestLocked(w.ID))
		}
	}
	n := len(r.items)
	r.mu.Unlock()

	for _, old := range evicted {
		r.closeEvicted(old, "capacity")
	}
	metrics.WorkspacesActive.Set(float64(n))
	r.log.Debug("workspace created", zap.String("workspace", w.ID))
	return w
}

// Get returns the workspace id and marks it as used.
func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.Lock()
	w, ok := r.items[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	w.touch(r.now())
	return w, nil
}

// Remove closes and forgets the workspace id. It reports whether id was live.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	w, ok := r.items[id]
	delete(r.items, id)
	n := len(r.items)
	r.mu.Unlock()
	if !ok {
		return false
	}
	w.Close()
	metrics.WorkspacesActive.Set(float64(n))
	return true
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep evicts workspaces idle longer than IdleTimeout and returns how many.
func (r *Registry) Sweep() int {
	if r.opts.IdleTimeout <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.opts.IdleTimeout)

	r.mu.Lock()
	var evicted []*Workspace
	for id, w := range r.items {
		if w.seen().Before(cutoff) {
			delete(r.items, id)
			evicted = append(evicted, w)
		}
	}
	n := len(r.items)
	r.mu.Unlock()

	for _, w := range evicted {
		r.closeEvicted(w, "idle")
	}
	metrics.WorkspacesActive.Set(float64(n))
	return len(evicted)
}

// Run sweeps every interval until ctx is done, then closes every workspace.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				r.log.Info("evicted idle workspaces", zap.Int("count", n), zap.Int("live", r.Len()))
			}
		}
	}
}

// evictOldestLocked removes the least recently seen workspace other than keep.
func (r *Registry) evictOldestLocked(keep string) *Workspace {
	var oldest *Workspace
	for id, w := range r.items {
		if id == keep {
			continue
		}
		if oldest == nil || w.seen().Before(oldest.seen()) {
			oldest = w
		}
	}
	delete(r.items, oldest.ID)
	return oldest
}

func (r *Registry) closeEvicted(w *Workspace, reason string) {
	w.Close()
	metrics.WorkspacesEvicted.WithLabelValues(reason).Inc()
	r.log.Debug("workspace evicted", zap.String("workspace", w.ID), zap.String("reason", reason))
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	items := r.items
	r.items = map[string]*Workspace{}
	r.mu.Unlock()
	for _, w := range items {
		w.Close()
	}
	metrics.WorkspacesActive.Set(0)
}
