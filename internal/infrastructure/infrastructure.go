// Package infrastructure assembles the shared systems every module depends on:
// lifecycle coordination, logging, the report registry database, blob
// storage, the form definition, and the PDF renderer.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/spotlight/internal/config"
	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/pkg/database"
	"github.com/JaimeStill/spotlight/pkg/lifecycle"
	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/storage"
)

// Infrastructure holds the core systems required by the API and web modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Form      *form.Definition
	Renderer  *pdf.Renderer
}

// New creates an Infrastructure from the application configuration, logging
// to stderr. Systems are initialized but not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with log output sent to w.
func NewWithWriter(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	def, err := form.Load(cfg.Report.FormPath)
	if err != nil {
		return nil, fmt.Errorf("form init failed: %w", err)
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Form:      def,
		Renderer:  pdf.NewRenderer(&cfg.Render, logger),
	}, nil
}

// Start registers the database and storage systems with the lifecycle
// coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
