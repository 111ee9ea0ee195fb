package api

import (
	"github.com/JaimeStill/spotlight/internal/config"
	"github.com/JaimeStill/spotlight/internal/infrastructure"
	"github.com/JaimeStill/spotlight/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	MaxBodySize int64
	Folder      string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		MaxBodySize:    cfg.API.MaxBodySize.Bytes(),
		Folder:         cfg.Storage.Folder,
	}
}
