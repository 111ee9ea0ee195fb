// Package middleware holds the HTTP layers shared by the API and web
// modules: panic recovery, request logging and CORS.
package middleware

import (
	"net/http"
	"slices"
)

// System is an ordered stack of HTTP middleware. The first layer added
// is the outermost when the stack is applied.
type System interface {
	Use(layers ...func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type stack []func(http.Handler) http.Handler

// New creates an empty middleware System.
func New() System {
	return &stack{}
}

func (s *stack) Use(layers ...func(http.Handler) http.Handler) {
	*s = append(*s, layers...)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for _, layer := range slices.Backward(*s) {
		handler = layer(handler)
	}
	return handler
}
