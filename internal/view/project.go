// Package view turns workspace state into the values the templates render.
// Nothing here holds state; the same input always yields the same cards.
package view

import (
	"fmt"
	"html/template"
	"slices"

	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/workspace"
)

// Card is one rendered link.
type Card struct {
	// ID correlates browser events with this card. It is derived from the
	// position, so it changes when the list is reordered and re-rendered.
	ID    string
	Index int
	Name  string
	URL   string
	Logo  links.Logo
	// LogoFallback is the fallback as a template-safe URL; the default icon
	// is a data: URL, which html/template would otherwise filter out.
	LogoFallback template.URL
	LogoPrimary  template.URL
	// LogoKeepTile keeps the placeholder tile behind the image after it loads.
	// It is set when the card already starts on the default icon.
	LogoKeepTile bool

	Dragging    bool
	Highlighted bool

	EditPath   string
	DeletePath string
}

// List is the rendered link list.
type List struct {
	WorkspaceID string
	Cards       []Card
	Empty       bool
	Dragging    bool
	// DropAllowed tells the page to accept drops on the cards.
	DropAllowed bool
}

// CardID is the event-correlation id for the card at index.
func CardID(index int) string { return fmt.Sprintf("link-%d", index) }

// Project builds the list view for s.
func Project(workspaceID string, s workspace.State, r *links.LogoResolver) List {
	list := List{
		WorkspaceID: workspaceID,
		Cards:       make([]Card, 0, len(s.Links)),
		Empty:       len(s.Links) == 0,
		Dragging:    s.Dragging,
		DropAllowed: s.DropAllowed,
	}
	base := "/w/" + workspaceID + "/links/"
	for i, l := range s.Links {
		logo := r.Resolve(l.URL)
		list.Cards = append(list.Cards, Card{
			ID:           CardID(i),
			Index:        i,
			Name:         l.Name,
			URL:          l.URL,
			Logo:         logo,
			LogoPrimary:  template.URL(logo.Primary),
			LogoFallback: template.URL(logo.Fallback),
			LogoKeepTile: !links.NewLogoImage(logo).OnLoad(),
			Dragging:     s.Dragging && s.Dragged == i,
			Highlighted:  slices.Contains(s.Highlighted, i),
			EditPath:     fmt.Sprintf("%s%d/edit", base, i),
			DeletePath:   fmt.Sprintf("%s%d/confirm-delete", base, i),
		})
	}
	return list
}
