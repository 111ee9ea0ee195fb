package main

import (
	"net/http"

	"github.com/JaimeStill/spotlight/internal/api"
	"github.com/JaimeStill/spotlight/internal/config"
	"github.com/JaimeStill/spotlight/internal/infrastructure"
	"github.com/JaimeStill/spotlight/pkg/handlers"
	"github.com/JaimeStill/spotlight/pkg/module"
	"github.com/JaimeStill/spotlight/pkg/routes"
	"github.com/JaimeStill/spotlight/web/app"
)

// Modules holds the HTTP modules mounted on the root router.
type Modules struct {
	API *module.Module
	App *module.Module

	// Routes lists the API route groups for startup logging.
	Routes []routes.Group
}

// NewModules builds the API module and, when enabled, the form page module.
// Both share one report system so pages and API see the same registry.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	runtime := api.NewRuntime(cfg, infra)
	domain := api.NewDomain(cfg, runtime)

	apiModule, err := api.NewModule(cfg, runtime, domain)
	if err != nil {
		return nil, err
	}

	modules := &Modules{
		API:    apiModule,
		Routes: api.Routes(domain, runtime),
	}

	if cfg.Web.On() {
		appModule, err := app.NewModule(app.Config{
			BasePath:    cfg.Web.BasePath,
			APIBasePath: cfg.API.BasePath,
			MaxBodySize: runtime.MaxBodySize,
		}, infra.Form, domain.Reports, infra.Logger)
		if err != nil {
			return nil, err
		}
		modules.App = appModule
	}

	return modules, nil
}

// Mount registers every built module on router.
func (m *Modules) Mount(router *module.Router) error {
	if err := router.Mount(m.API); err != nil {
		return err
	}
	if m.App != nil {
		return router.Mount(m.App)
	}
	return nil
}

type health struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks,omitempty"`
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, health{Status: "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		checks := infra.Lifecycle.Checks()
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, health{Status: "not ready", Checks: checks})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, health{Status: "ready", Checks: checks})
	})

	return router
}
