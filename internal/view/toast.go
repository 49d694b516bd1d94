package view

import "github.com/joestump/linkly/internal/workspace"

// Toast is one rendered notification.
type Toast struct {
	Kind    string
	Message string
	Icon    string
	Class   string
	// DurationMS is 0 for toasts that stay until dismissed.
	DurationMS int64
}

var toastIcons = map[workspace.Kind]string{
	workspace.Success: "check_circle",
	workspace.Error:   "error",
	workspace.Warning: "warning",
	workspace.Info:    "info",
}

var toastClasses = map[workspace.Kind]string{
	workspace.Success: "alert-success",
	workspace.Error:   "alert-error",
	workspace.Warning: "alert-warning",
	workspace.Info:    "alert-info",
}

// Toasts maps notifications to toasts. Unknown kinds render as info.
func Toasts(ns []workspace.Notification) []Toast {
	out := make([]Toast, 0, len(ns))
	for _, n := range ns {
		kind := n.Kind
		if _, ok := toastIcons[kind]; !ok {
			kind = workspace.Info
		}
		out = append(out, Toast{
			Kind:       string(kind),
			Message:    n.Message,
			Icon:       toastIcons[kind],
			Class:      toastClasses[kind],
			DurationMS: n.Duration.Milliseconds(),
		})
	}
	return out
}
