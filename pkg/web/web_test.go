package web_test

import (
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/spotlight/pkg/web"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html":  {Data: []byte(`{{ define "base" }}<title>{{ .Title }}</title><a href="{{ .BasePath }}/">home</a>{{ template "body" . }}{{ end }}`)},
		"views/home.html":    {Data: []byte(`{{ define "body" }}<p>{{ upper .Data }}</p>{{ end }}`)},
		"views/missing.html": {Data: []byte(`{{ define "body" }}<p>not found</p>{{ end }}`)},
		"views/broken.html":  {Data: []byte(`{{ define "body" }}{{ .Data.Nope }}{{ end }}`)},
		"static/app.css":     {Data: []byte(`body{}`)},
	}
}

func newSet(t *testing.T) *web.TemplateSet {
	t.Helper()
	funcs := template.FuncMap{"upper": strings.ToUpper}
	ts, err := web.NewTemplateSet(testFS(), "layouts/*.html", funcs, "/app", "views/home.html", "views/missing.html", "views/broken.html")
	if err != nil {
		t.Fatalf("new template set: %v", err)
	}
	return ts
}

func TestRender(t *testing.T) {
	ts := newSet(t)

	rec := httptest.NewRecorder()
	if err := ts.Render(rec, http.StatusOK, "base", "views/home.html", "Home", "<b>spot</b>"); err != nil {
		t.Fatalf("render: %v", err)
	}

	body := rec.Body.String()
	for _, want := range []string{"<title>Home</title>", `href="/app/"`, "&lt;B&gt;SPOT&lt;/B&gt;"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %s", want, body)
		}
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type: got %q", ct)
	}
	if ts.BasePath() != "/app" {
		t.Errorf("base path: got %q", ts.BasePath())
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newSet(t)

	rec := httptest.NewRecorder()
	if err := ts.Render(rec, http.StatusOK, "base", "views/unknown.html", "", nil); err == nil {
		t.Error("expected error for unknown view")
	}

	rec = httptest.NewRecorder()
	if err := ts.Render(rec, http.StatusOK, "base", "views/broken.html", "", "text"); err == nil {
		t.Error("expected execution error")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("partial output written: %q", rec.Body.String())
	}
}

func TestNewTemplateSetMissingView(t *testing.T) {
	if _, err := web.NewTemplateSet(testFS(), "layouts/*.html", nil, "", "views/nope.html"); err == nil {
		t.Error("expected error for missing view file")
	}
}

func TestRouterNotFound(t *testing.T) {
	ts := newSet(t)
	r := web.NewRouter(ts.ErrorHandler("base", "views/missing.html", "Not Found", http.StatusNotFound))
	r.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, "index")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Body.String() != "index" {
		t.Errorf("index: got %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/elsewhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Errorf("body: got %q", rec.Body.String())
	}
}

func TestStatic(t *testing.T) {
	h, err := web.Static(testFS(), "static", "/static/")
	if err != nil {
		t.Fatalf("static: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/static/app.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if rec.Body.String() != "body{}" {
		t.Errorf("body: got %q", rec.Body.String())
	}
}
