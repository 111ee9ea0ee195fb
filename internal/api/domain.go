package api

import (
	"github.com/JaimeStill/spotlight/internal/config"
	"github.com/JaimeStill/spotlight/internal/reports"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Pipeline *reports.Pipeline
	Reports  reports.System
}

// NewDomain creates the publishing pipeline and the report system from the
// API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	uploader := reports.NewUploader(runtime.Storage, runtime.Folder, runtime.Logger)

	pipeline := reports.NewPipeline(
		runtime.Form,
		cfg.Report.Classifier(),
		runtime.Renderer,
		uploader,
		runtime.Logger,
	)

	return &Domain{
		Pipeline: pipeline,
		Reports: reports.New(
			runtime.Database.Connection(),
			runtime.Storage,
			pipeline,
			runtime.Folder,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
