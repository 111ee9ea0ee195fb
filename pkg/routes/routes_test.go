package routes_test

import (
	"io"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/spotlight/pkg/openapi"
	"github.com/JaimeStill/spotlight/pkg/routes"
)

func text(s string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, s)
	}
}

func groups() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/reports",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: text("list")},
				{Method: "GET", Pattern: "/{id}", Handler: text("find")},
			},
			Children: []routes.Group{
				{
					Prefix: "/{id}/files",
					Routes: []routes.Route{
						{Method: "GET", Pattern: "/pdf", Handler: text("pdf")},
					},
				},
			},
		},
		{
			Prefix: "/storage",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/sync", Handler: text("sync")},
			},
		},
	}
}

func TestPatterns(t *testing.T) {
	want := []string{
		"GET /reports",
		"GET /reports/{id}",
		"GET /reports/{id}/files/pdf",
		"POST /storage/sync",
	}
	if diff := cmp.Diff(want, routes.Patterns(groups()...)); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, groups()...)

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"GET", "/reports", 200, "list"},
		{"GET", "/reports/42", 200, "find"},
		{"GET", "/reports/42/files/pdf", 200, "pdf"},
		{"POST", "/storage/sync", 200, "sync"},
		{"GET", "/storage/sync", 405, ""},
		{"GET", "/missing", 404, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body: got %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	routes.Describe(spec, routes.Group{
		Prefix:  "/reports",
		Tags:    []string{"Reports"},
		Schemas: map[string]*openapi.Schema{"Report": {Type: "object"}},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: text("list"), OpenAPI: &openapi.Operation{Summary: "List"}},
			{Method: "POST", Pattern: "", Handler: text("submit"), OpenAPI: &openapi.Operation{Summary: "Submit", Tags: []string{"Publish"}}},
			{Method: "GET", Pattern: "/{id}", Handler: text("find")},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/download", Handler: text("pdf"), OpenAPI: &openapi.Operation{Summary: "Download"}},
				},
			},
		},
	})

	if diff := cmp.Diff([]string{"/reports", "/reports/{id}/download"}, slices.Sorted(maps.Keys(spec.Paths))); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	list := spec.Paths["/reports"]
	if list.Get == nil || list.Post == nil {
		t.Fatalf("/reports operations: get %v, post %v", list.Get, list.Post)
	}
	if diff := cmp.Diff([]string{"Reports"}, list.Get.Tags); diff != "" {
		t.Errorf("inherited tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Publish"}, list.Post.Tags); diff != "" {
		t.Errorf("own tags mismatch (-want +got):\n%s", diff)
	}
	if got := spec.Paths["/reports/{id}/download"].Get.Tags; len(got) != 1 || got[0] != "Reports" {
		t.Errorf("child tags: got %v", got)
	}
	if _, ok := spec.Components.Schemas["Report"]; !ok {
		t.Error("group schema was not added to components")
	}
}
