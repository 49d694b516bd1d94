package api

import (
	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/workspace"
)

// --- Link types ---

// CreateLinkRequest is the request body for POST /api/v1/workspaces/{ws}/links.
type CreateLinkRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// UpdateLinkRequest is the request body for PUT /api/v1/workspaces/{ws}/links/{index}.
// The name is intentionally omitted; it cannot change after creation.
type UpdateLinkRequest struct {
	URL string `json:"url"`
}

// ReorderRequest is the request body for POST /api/v1/workspaces/{ws}/links/reorder.
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// LogoResponse carries both logo sources so clients can fall back themselves.
type LogoResponse struct {
	Primary  string `json:"primary"`
	Fallback string `json:"fallback"`
}

// LinkResponse is the JSON representation of a single link.
type LinkResponse struct {
	Index int          `json:"index"`
	Name  string       `json:"name"`
	URL   string       `json:"url"`
	Logo  LogoResponse `json:"logo"`
}

// NotificationResponse is a notification raised by the request.
type NotificationResponse struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	DurationMS int64  `json:"duration_ms"`
}

// LinkListResponse is the response for every call that returns the list.
type LinkListResponse struct {
	Links         []LinkResponse         `json:"links"`
	Notifications []NotificationResponse `json:"notifications"`
}

// LinkMutationResponse is returned by add, update and delete.
type LinkMutationResponse struct {
	Link          *LinkResponse          `json:"link,omitempty"`
	Links         []LinkResponse         `json:"links"`
	Notifications []NotificationResponse `json:"notifications"`
}

// --- Workspace types ---

// WorkspaceResponse is returned by POST /api/v1/workspaces.
type WorkspaceResponse struct {
	ID    string         `json:"id"`
	Links []LinkResponse `json:"links"`
}

func toLinkResponses(ls []links.Link, logos *links.LogoResolver) []LinkResponse {
	out := make([]LinkResponse, 0, len(ls))
	for i, l := range ls {
		out = append(out, toLinkResponse(i, l, logos))
	}
	return out
}

func toLinkResponse(i int, l links.Link, logos *links.LogoResolver) LinkResponse {
	logo := logos.Resolve(l.URL)
	return LinkResponse{
		Index: i,
		Name:  l.Name,
		URL:   l.URL,
		Logo:  LogoResponse{Primary: logo.Primary, Fallback: logo.Fallback},
	}
}

func toNotificationResponses(ns []workspace.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, NotificationResponse{
			Kind:       string(n.Kind),
			Message:    n.Message,
			DurationMS: n.Duration.Milliseconds(),
		})
	}
	return out
}
