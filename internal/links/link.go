// Package links holds the ordered link collection and the logo resolver.
package links

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrEmptyField is returned when a required name or URL is blank after trimming.
	ErrEmptyField = errors.New("name and URL are both required")

	// ErrDuplicateName is returned when a link with the same name already exists.
	ErrDuplicateName = errors.New("a link with this name already exists")

	// ErrIndexOutOfRange is returned when an index no longer refers to a link.
	ErrIndexOutOfRange = errors.New("link index out of range")
)

// Link is a named hyperlink. The name is fixed once the link is created.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Collection is the ordered list of links owned by one page session.
// Order is the display order. The zero value is an empty collection.
// Collection is not safe for concurrent use; callers serialize access.
type Collection struct {
	items []Link
}

// NewCollection returns a collection seeded with the given links, in order.
// Seeds are not validated.
func NewCollection(seed ...Link) *Collection {
	return &Collection{items: slices.Clone(seed)}
}

// Len returns the number of links.
func (c *Collection) Len() int { return len(c.items) }

// Links returns a copy of the links in display order.
func (c *Collection) Links() []Link {
	return slices.Clone(c.items)
}

// At returns the link at index.
func (c *Collection) At(index int) (Link, error) {
	if err := c.check(index); err != nil {
		return Link{}, err
	}
	return c.items[index], nil
}

// Add appends a new link. The name must be unique (exact, case-sensitive match)
// and neither field may be blank.
func (c *Collection) Add(name, url string) error {
	if isBlank(name) || isBlank(url) {
		return ErrEmptyField
	}
	if c.IndexOf(name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	c.items = append(c.items, Link{Name: name, URL: url})
	return nil
}

// IndexOf returns the index of the link named name, or -1.
func (c *Collection) IndexOf(name string) int {
	return slices.IndexFunc(c.items, func(l Link) bool { return l.Name == name })
}

// UpdateURL replaces the URL of the link at index. The name is never touched.
func (c *Collection) UpdateURL(index int, url string) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.items[index].URL = url
	return nil
}

// Remove deletes the link at index and returns it. Later links shift down by one.
func (c *Collection) Remove(index int) (Link, error) {
	if err := c.check(index); err != nil {
		return Link{}, err
	}
	removed := c.items[index]
	c.items = slices.Delete(c.items, index, index+1)
	return removed, nil
}

// Reorder moves the link at from so that it ends up at to. The target index is
// interpreted against the list with the moved link already taken out, so
// Reorder(0, 2) on [A B C] yields [B C A]. It reports whether anything moved;
// from == to is a no-op.
func (c *Collection) Reorder(from, to int) (bool, error) {
	if err := c.check(from); err != nil {
		return false, err
	}
	if err := c.check(to); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}
	moved := c.items[from]
	c.items = slices.Delete(c.items, from, from+1)
	c.items = slices.Insert(c.items, to, moved)
	return true, nil
}

func (c *Collection) check(index int) error {
	if index < 0 || index >= len(c.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(c.items))
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
