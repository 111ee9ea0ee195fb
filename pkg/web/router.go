package web

import "net/http"

// Router wraps http.ServeMux and sends requests no pattern matches to a
// not-found handler instead of the default plain-text 404.
type Router struct {
	mux      *http.ServeMux
	notFound http.Handler
}

// NewRouter creates a Router. A nil notFound keeps ServeMux behavior.
func NewRouter(notFound http.Handler) *Router {
	return &Router{
		mux:      http.NewServeMux(),
		notFound: notFound,
	}
}

// Handle registers a handler for the given pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers a handler function for the given pattern.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.mux.Handler(req); pattern == "" && r.notFound != nil {
		r.notFound.ServeHTTP(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}
