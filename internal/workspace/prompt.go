package workspace

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrPromptNotFound is returned when answering a prompt that is unknown or
// already answered.
var ErrPromptNotFound = errors.New("prompt not found")

// PendingPrompt is a question waiting for the user.
type PendingPrompt struct {
	ID      string
	Title   string
	Message string
}

type prompt struct {
	PendingPrompt
	answer chan bool
}

// Prompts is a Confirmer whose questions are answered by later requests.
// Confirm parks the calling goroutine until Answer is called with the prompt's
// ID or ctx ends. There is no timeout of its own.
type Prompts struct {
	mu      sync.Mutex
	pending map[string]*prompt
	opened  chan PendingPrompt
}

// NewPrompts returns an empty prompt set.
func NewPrompts() *Prompts {
	return &Prompts{
		pending: map[string]*prompt{},
		opened:  make(chan PendingPrompt),
	}
}

// Confirm implements Confirmer.
func (p *Prompts) Confirm(ctx context.Context, message, title string) (bool, error) {
	pr := &prompt{
		PendingPrompt: PendingPrompt{ID: uuid.NewString(), Title: title, Message: message},
		answer:        make(chan bool, 1),
	}
	p.mu.Lock()
	p.pending[pr.ID] = pr
	p.mu.Unlock()
	defer p.forget(pr.ID)

	// Wait until the prompt has been handed to whoever renders it.
	select {
	case p.opened <- pr.PendingPrompt:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case yes := <-pr.answer:
		return yes, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Opened delivers each prompt as it is raised. Confirm blocks until its
// prompt has been received here.
func (p *Prompts) Opened() <-chan PendingPrompt { return p.opened }

// Answer resolves the prompt id. Only yes == true confirms.
func (p *Prompts) Answer(id string, yes bool) error {
	p.mu.Lock()
	pr, ok := p.pending[id]
	if ok {
		delete(p.pending, id)
	}
	p.mu.Unlock()
	if !ok {
		return ErrPromptNotFound
	}
	pr.answer <- yes
	return nil
}

// Pending returns how many prompts are still open.
func (p *Prompts) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *Prompts) forget(id string) {
	p.mu.Lock()
	delete(p.pending, id)
	p.mu.Unlock()
}
