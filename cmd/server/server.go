package main

import (
	"time"

	"github.com/JaimeStill/spotlight/internal/config"
	"github.com/JaimeStill/spotlight/internal/infrastructure"
	"github.com/JaimeStill/spotlight/pkg/routes"
)

// Server owns the infrastructure, the mounted modules, and the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

// NewServer wires every module onto a single router.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	if err := modules.Mount(router); err != nil {
		return nil, err
	}
	if cfg.Web.On() {
		router.Redirect("/", cfg.Web.BasePath+"/")
	}

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
		"modules", router.Prefixes(),
	)
	for _, pattern := range routes.Patterns(modules.Routes...) {
		infra.Logger.Debug("api route", "pattern", cfg.API.BasePath+" "+pattern)
	}

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, cfg.ShutdownTimeoutDuration(), router, infra.Logger),
	}, nil
}

// Start launches the infrastructure systems and the HTTP listener.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready", "checks", s.infra.Lifecycle.Checks())
	}()

	return nil
}

// Shutdown stops every subsystem within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	if err := s.infra.Lifecycle.Shutdown(timeout); err != nil {
		return err
	}
	s.infra.Logger.Info("spotlight stopped")
	return nil
}
