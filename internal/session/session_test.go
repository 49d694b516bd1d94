package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/linkly/internal/testutil"
)

func TestTheme_PersistsAcrossRequests(t *testing.T) {
	sm := NewManager(testutil.NewTestDB(t), "sqlite3", time.Hour, false)

	var seen []string
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, Theme(r.Context(), sm))
		switch r.URL.Query().Get("set") {
		case "dark":
			SetDark(r.Context(), sm, true)
		case "light":
			SetDark(r.Context(), sm, false)
		case "system":
			ClearTheme(r.Context(), sm)
		}
	}))

	do := func(query string, cookies []*http.Cookie) []*http.Cookie {
		req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if got := rec.Result().Cookies(); len(got) > 0 {
			return got
		}
		return cookies
	}

	cookies := do("?set=dark", nil)
	require.NotEmpty(t, cookies)
	cookies = do("?set=light", cookies)
	cookies = do("?set=system", cookies)
	do("", cookies)

	assert.Equal(t, []string{ThemeSystem, ThemeDark, ThemeLight, ThemeSystem}, seen)
}

func TestNewManager_CookieSettings(t *testing.T) {
	sm := NewManager(testutil.NewTestDB(t), "sqlite3", 48*time.Hour, true)
	assert.Equal(t, 48*time.Hour, sm.Lifetime)
	assert.True(t, sm.Cookie.Secure)
	assert.True(t, sm.Cookie.HttpOnly)
	assert.Equal(t, "linkly_session", sm.Cookie.Name)
}
