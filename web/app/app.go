// Package app serves the SPOT Light form page: fill in the monthly report,
// save it, review the classified preview, and export it as a published PDF.
package app

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/internal/reports"
	"github.com/JaimeStill/spotlight/pkg/middleware"
	"github.com/JaimeStill/spotlight/pkg/module"
	"github.com/JaimeStill/spotlight/pkg/web"
)

//go:embed templates static
var content embed.FS

const (
	layout       = "base"
	formView     = "templates/views/form.html"
	notFoundView = "templates/views/not_found.html"
)

// Publisher is the part of the report system the page needs.
type Publisher interface {
	Submit(ctx context.Context, sub form.Submission) (*reports.Report, error)
	Preview(sub form.Submission) (*reports.Preview, error)
}

// Config locates the page and the API it links downloads to.
type Config struct {
	BasePath    string
	APIBasePath string
	MaxBodySize int64
}

// NewModule creates the form page module mounted at cfg.BasePath.
func NewModule(cfg Config, def *form.Definition, pub Publisher, logger *slog.Logger) (*module.Module, error) {
	templates, err := web.NewTemplateSet(content, "templates/layouts/*.html", nil, cfg.BasePath, formView, notFoundView)
	if err != nil {
		return nil, fmt.Errorf("app templates: %w", err)
	}

	static, err := web.Static(content, "static", "/static/")
	if err != nil {
		return nil, err
	}

	logger = logger.With("module", "app")
	h := newHandler(cfg, def, pub, templates, logger)

	router := web.NewRouter(templates.ErrorHandler(layout, notFoundView, "Tidak Ditemukan", http.StatusNotFound))
	router.HandleFunc("GET /{$}", h.page)
	router.HandleFunc("POST /save", h.save)
	router.HandleFunc("POST /export", h.export)
	router.Handle("GET /static/", static)

	m, err := module.New(cfg.BasePath, router)
	if err != nil {
		return nil, err
	}
	m.Use(middleware.Recover(logger))
	m.Use(middleware.Logger(logger))

	return m, nil
}
