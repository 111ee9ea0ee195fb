package api

import "github.com/JaimeStill/spotlight/pkg/routes"

// Routes returns the route groups the API module serves.
func Routes(domain *Domain, runtime *Runtime) []routes.Group {
	return []routes.Group{
		domain.Reports.Handler(runtime.MaxBodySize).Routes(),
		newFormHandler(domain.Pipeline.Definition(), runtime.Logger, runtime.MaxBodySize).routes(),
	}
}
