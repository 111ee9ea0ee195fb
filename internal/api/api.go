// Package api assembles the JSON API module from the report domain.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/spotlight/internal/config"
	"github.com/JaimeStill/spotlight/pkg/middleware"
	"github.com/JaimeStill/spotlight/pkg/module"
	"github.com/JaimeStill/spotlight/pkg/openapi"
	"github.com/JaimeStill/spotlight/pkg/routes"
)

// NewModule creates the API module with all domain handlers, the OpenAPI
// document at /openapi.json, and middleware.
func NewModule(cfg *config.Config, runtime *Runtime, domain *Domain) (*module.Module, error) {
	groups := Routes(domain, runtime)

	specBytes, err := buildSpec(cfg, groups)
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}

	mux := http.NewServeMux()
	routes.Register(mux, groups...)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}
	m.Use(
		middleware.Recover(runtime.Logger),
		middleware.CORS(&cfg.API.CORS),
		middleware.Logger(runtime.Logger),
	)

	return m, nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	routes.Describe(spec, groups...)

	return openapi.MarshalJSON(spec)
}
