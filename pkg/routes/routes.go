// Package routes declares HTTP routes as nested prefix groups and registers
// them on a ServeMux using method-qualified patterns.
package routes

import (
	"net/http"

	"github.com/JaimeStill/spotlight/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler. OpenAPI is optional
// and only used when the route is described.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group organizes routes and child groups under a common prefix. Tags
// apply to every described operation that declares none of its own, and
// Schemas are added to the spec components.
type Group struct {
	Prefix   string
	Tags     []string
	Schemas  map[string]*openapi.Schema
	Routes   []Route
	Children []Group
}

// Register adds every route of the given groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	walk("", nil, groups, func(pattern, _ string, _ []string, r Route) {
		mux.HandleFunc(pattern, r.Handler)
	})
}

// Patterns returns the ServeMux patterns the groups register, in
// declaration order.
func Patterns(groups ...Group) []string {
	var patterns []string
	walk("", nil, groups, func(pattern, _ string, _ []string, _ Route) {
		patterns = append(patterns, pattern)
	})
	return patterns
}

// Describe adds each route that carries OpenAPI metadata to spec, along
// with the schemas its groups declare.
func Describe(spec *openapi.Spec, groups ...Group) {
	addSchemas(spec, groups)
	walk("", nil, groups, func(_, path string, tags []string, r Route) {
		if r.OpenAPI == nil {
			return
		}
		op := *r.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}
		if path == "" {
			path = "/"
		}
		spec.AddOperation(r.Method, path, &op)
	})
}

func addSchemas(spec *openapi.Spec, groups []Group) {
	for _, g := range groups {
		if g.Schemas != nil {
			spec.Components.AddSchemas(g.Schemas)
		}
		addSchemas(spec, g.Children)
	}
}

func walk(parent string, tags []string, groups []Group, fn func(pattern, path string, tags []string, r Route)) {
	for _, g := range groups {
		prefix := parent + g.Prefix
		groupTags := tags
		if len(g.Tags) > 0 {
			groupTags = g.Tags
		}
		for _, r := range g.Routes {
			path := prefix + r.Pattern
			fn(r.Method+" "+path, path, groupTags, r)
		}
		walk(prefix, groupTags, g.Children, fn)
	}
}
