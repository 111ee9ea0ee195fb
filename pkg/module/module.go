// Package module mounts self-contained HTTP handlers under single-level path
// prefixes. Each module strips its prefix before dispatching and carries its
// own middleware stack.
package module

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/spotlight/pkg/middleware"
)

// ErrInvalidPrefix is returned for an empty, relative, or multi-level prefix.
var ErrInvalidPrefix = errors.New("invalid module prefix")

// Module is an HTTP handler that strips its prefix and delegates to an inner
// router wrapped in the module's middleware.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a Module for a single-level prefix such as "/api".
func New(prefix string, router http.Handler) (*Module, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}, nil
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use adds middleware to the module's stack, outermost first.
func (m *Module) Use(layers ...func(http.Handler) http.Handler) {
	m.middleware.Use(layers...)
}

// Handler returns the inner router wrapped with the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// ServeHTTP strips the prefix from the request path and dispatches to the
// wrapped router. The original request is left untouched.
func (m *Module) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, strip(req, m.prefix))
}

// ValidatePrefix reports whether prefix is usable as a module mount point.
func ValidatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("%w: empty", ErrInvalidPrefix)
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("%w: %s must start with /", ErrInvalidPrefix, prefix)
	case prefix == "/" || strings.Count(prefix, "/") != 1:
		return fmt.Errorf("%w: %s must be a single-level sub-path", ErrInvalidPrefix, prefix)
	}
	return nil
}

func strip(req *http.Request, prefix string) *http.Request {
	path := strings.TrimPrefix(req.URL.Path, prefix)
	if path == "" {
		path = "/"
	}

	r := new(http.Request)
	*r = *req
	r.URL = new(url.URL)
	*r.URL = *req.URL
	r.URL.Path = path
	r.URL.RawPath = ""
	return r
}
