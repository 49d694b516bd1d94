package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/joestump/linkly/internal/session"
)

// ThemeHandler handles the theme toggle endpoint.
type ThemeHandler struct {
	sessions *scs.SessionManager
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(sm *scs.SessionManager) *ThemeHandler {
	return &ThemeHandler{sessions: sm}
}

// themeSystemValue is the form value that drops the stored choice.
const themeSystemValue = "system"

// Toggle handles POST /theme with theme=light|dark|system. The choice is kept
// in the session so it survives reloads; "system" forgets it. HX-Trigger lets
// the page swap immediately.
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	theme := r.FormValue("theme")
	switch theme {
	case session.ThemeLight, session.ThemeDark:
		session.SetDark(r.Context(), h.sessions, theme == session.ThemeDark)
	case themeSystemValue:
		session.ClearTheme(r.Context(), h.sessions)
	default:
		http.Error(w, "invalid theme", http.StatusBadRequest)
		return
	}

	trigger(w, map[string]any{
		"themeChanged": map[string]string{"theme": theme},
	})
	w.WriteHeader(http.StatusNoContent)
}

func themeFromRequest(sm *scs.SessionManager, r *http.Request) string {
	return session.Theme(r.Context(), sm)
}
