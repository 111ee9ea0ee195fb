// Package web renders server-side pages from embedded Go templates and
// serves embedded static assets.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewData is the value every page template executes against.
// BasePath enables portable URLs in templates via {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet holds one parsed template tree per view, each a clone of the
// shared layouts with the view's own template added.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layouts matching layoutGlob in fsys, then clones
// them once per view. Parsing happens up front so a broken template fails
// at startup.
func NewTemplateSet(fsys fs.FS, layoutGlob string, funcs template.FuncMap, basePath string, views ...string) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(funcs).ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	set := make(map[string]*template.Template, len(views))
	for _, view := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", view, err)
		}
		if _, err := t.ParseFS(fsys, view); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", view, err)
		}
		set[view] = t
	}

	return &TemplateSet{
		views:    set,
		basePath: basePath,
	}, nil
}

// BasePath returns the path prefix pages are served under.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Render executes layout for view into a buffer and writes it with status.
// Nothing is written when execution fails.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layout, view, title string, data any) error {
	t, ok := ts.views[view]
	if !ok {
		return fmt.Errorf("template not found: %s", view)
	}

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, layout, ViewData{
		Title:    title,
		BasePath: ts.basePath,
		Data:     data,
	})
	if err != nil {
		return fmt.Errorf("execute %s: %w", view, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// ErrorHandler returns a handler that renders view with the given status.
func (ts *TemplateSet) ErrorHandler(layout, view, title string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, layout, view, title, nil); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}
