package handler

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/joestump/linkly/internal/view"
	"github.com/joestump/linkly/web"
)

// BasePage carries layout-level data available to every template.
type BasePage struct {
	Theme string // "light", "dark", or "" (let the inline script decide)
}

// ListUpdate is the body of every response that changes the link list: the
// list itself plus toasts swapped out-of-band.
type ListUpdate struct {
	List   view.List
	Toasts []view.Toast
}

var funcs = template.FuncMap{
	"cardURL": func(ws string, parts ...any) string {
		var b strings.Builder
		b.WriteString("/w/" + ws)
		for _, p := range parts {
			fmt.Fprintf(&b, "/%v", p)
		}
		return b.String()
	},
}

// pageCache maps a render key (e.g. "index.html") to a compiled template set
// containing base.html + partials + that one page file. Each page gets its own
// set so {{define "content"}} blocks don't collide.
var (
	pageCache    map[string]*template.Template
	fragmentTmpl *template.Template
)

func init() {
	partials, err := fs.Glob(web.TemplateFS, "templates/partials/*.html")
	if err != nil {
		panic("glob partials: " + err.Error())
	}

	fragmentTmpl = template.Must(template.New("").Funcs(funcs).ParseFS(web.TemplateFS, partials...))

	pageCache = make(map[string]*template.Template)
	err = fs.WalkDir(web.TemplateFS, "templates/pages", func(p string, d fs.DirEntry, e error) error {
		if e != nil || d.IsDir() || !strings.HasSuffix(p, ".html") {
			return e
		}

		files := make([]string, 0, 2+len(partials))
		files = append(files, "templates/base.html")
		files = append(files, partials...)
		files = append(files, p)

		t, err := template.New("").Funcs(funcs).ParseFS(web.TemplateFS, files...)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		pageCache[filepath.Base(p)] = t
		return nil
	})
	if err != nil {
		panic("build page cache: " + err.Error())
	}
}

// isHTMX returns true when the request was sent by HTMX.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// render executes a full-page template (base layout + named page).
func render(w http.ResponseWriter, tmpl string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t, ok := pageCache[tmpl]
	if !ok {
		http.Error(w, "template not found: "+tmpl, http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// renderFragment executes a named template from the global partials set.
func renderFragment(w http.ResponseWriter, tmpl string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := fragmentTmpl.ExecuteTemplate(w, tmpl, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// trigger adds a client-side event to the HX-Trigger header. Events with a
// nil detail are sent with an empty object.
func trigger(w http.ResponseWriter, events map[string]any) {
	for k, v := range events {
		if v == nil {
			events[k] = struct{}{}
		}
	}
	b, err := json.Marshal(events)
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}
