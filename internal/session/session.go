// Package session wires the SCS session manager and the theme preference it
// carries. The theme is the only thing Linkly persists across page loads.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

const darkKey = "theme_dark"

// Theme values understood by the templates. ThemeSystem leaves the choice to
// the browser's prefers-color-scheme.
const (
	ThemeSystem = ""
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// NewManager creates an SCS session manager backed by the application DB.
// The driver parameter selects the appropriate store: "mysql", "postgres", or
// "sqlite3" (default).
func NewManager(db *sqlx.DB, driver string, lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	switch driver {
	case "mysql":
		sm.Store = mysqlstore.New(db.DB)
	case "postgres":
		sm.Store = postgresstore.New(db.DB)
	default: // sqlite3
		sm.Store = sqlite3store.New(db.DB)
	}
	sm.Lifetime = lifetime
	sm.Cookie.Name = "linkly_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Persist = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm
}

// Theme returns the stored theme, or ThemeSystem when none was chosen.
func Theme(ctx context.Context, sm *scs.SessionManager) string {
	if !sm.Exists(ctx, darkKey) {
		return ThemeSystem
	}
	if sm.GetBool(ctx, darkKey) {
		return ThemeDark
	}
	return ThemeLight
}

// SetDark stores the theme preference.
func SetDark(ctx context.Context, sm *scs.SessionManager, dark bool) {
	sm.Put(ctx, darkKey, dark)
}

// ClearTheme forgets the stored preference so the page follows the system
// setting again.
func ClearTheme(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, darkKey)
}
