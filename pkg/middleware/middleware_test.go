package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/spotlight/pkg/middleware"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := middleware.New()

	for _, name := range []string{"first", "second"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if diff := cmp.Diff([]string{"first", "second", "handler"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestUseSeveral(t *testing.T) {
	var order []string
	layer := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mw := middleware.New()
	mw.Use(layer("recover"), layer("cors"))
	mw.Use(layer("logger"))

	mw.Apply(http.HandlerFunc(ok)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/reports", nil))

	if diff := cmp.Diff([]string{"recover", "cors", "logger"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCORS(t *testing.T) {
	enabled := &middleware.CORSConfig{
		Enabled:        true,
		Origins:        []string{"http://example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         3600,
	}

	tests := []struct {
		name       string
		cfg        *middleware.CORSConfig
		method     string
		origin     string
		preflight  bool
		wantOrigin string
		wantStatus int
		wantCalled bool
	}{
		{name: "disabled", cfg: &middleware.CORSConfig{}, method: "GET", origin: "http://example.com", wantStatus: 200, wantCalled: true},
		{name: "no origins", cfg: &middleware.CORSConfig{Enabled: true}, method: "OPTIONS", origin: "http://example.com", preflight: true, wantStatus: 200, wantCalled: true},
		{name: "allowed origin", cfg: enabled, method: "GET", origin: "http://example.com", wantOrigin: "http://example.com", wantStatus: 200, wantCalled: true},
		{name: "disallowed origin", cfg: enabled, method: "GET", origin: "http://denied.com", wantStatus: 200, wantCalled: true},
		{name: "preflight", cfg: enabled, method: "OPTIONS", origin: "http://example.com", preflight: true, wantOrigin: "http://example.com", wantStatus: 204},
		{name: "denied preflight", cfg: enabled, method: "OPTIONS", origin: "http://denied.com", preflight: true, wantStatus: 403},
		{name: "plain options", cfg: enabled, method: "OPTIONS", origin: "http://example.com", wantOrigin: "http://example.com", wantStatus: 200, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := middleware.CORS(tt.cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow-origin: got %q, want %q", got, tt.wantOrigin)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called: got %v, want %v", called, tt.wantCalled)
			}
			if tt.wantOrigin != "" {
				if got := rec.Header().Get("Access-Control-Max-Age"); got != "3600" {
					t.Errorf("max-age: got %s, want 3600", got)
				}
			}
		})
	}
}

func TestCORSConfigFinalize(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg := middleware.CORSConfig{}
	if err := cfg.Finalize(&middleware.CORSEnv{Enabled: "TEST_CORS_ENABLED", Origins: "TEST_CORS_ORIGINS"}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled should be set from env")
	}
	if diff := cmp.Diff([]string{"http://a.test", "http://b.test"}, cfg.Origins); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"GET", "POST", "OPTIONS"}, cfg.AllowedMethods); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("max_age: got %d, want 3600", cfg.MaxAge)
	}
}

func TestCORSConfigRejectsOrigin(t *testing.T) {
	for _, origin := range []string{"spot.test", "ftp://spot.test", "http://spot.test/form", "*"} {
		cfg := middleware.CORSConfig{Enabled: true, Origins: []string{origin}}
		if err := cfg.Finalize(nil); err == nil {
			t.Errorf("origin %q should be rejected", origin)
		}
	}

	cfg := middleware.CORSConfig{Origins: []string{"https://spot.test:8443"}}
	if err := cfg.Finalize(nil); err != nil {
		t.Errorf("host with port rejected: %v", err)
	}
}

func TestCORSMergeKeepsMaxAge(t *testing.T) {
	base := middleware.CORSConfig{MaxAge: 600}
	base.Merge(&middleware.CORSConfig{Enabled: true})

	if base.MaxAge != 600 {
		t.Errorf("max_age: got %d, want 600", base.MaxAge)
	}
	if !base.Enabled {
		t.Error("enabled should apply from overlay")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, "done")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/reports?x=1", nil))

	out := buf.String()
	for _, want := range []string{"method=POST", "uri=\"/api/reports?x=1\"", "status=201", "bytes=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestLoggerDefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("log output missing implicit 200: %s", buf.String())
	}
}

func TestRecover(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := middleware.Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}

	passthrough := middleware.Recover(logger)(http.HandlerFunc(ok))
	rec = httptest.NewRecorder()
	passthrough.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}
