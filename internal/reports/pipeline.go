package reports

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/semaphore"

	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/pkg/outline"
	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/preview"
	"github.com/JaimeStill/spotlight/pkg/report"
)

// Renderer produces document bytes from a report.
type Renderer interface {
	Render(rpt report.Report) ([]byte, error)
}

// Document is a rendered report ready to publish.
type Document struct {
	Filename  string
	Team      string
	Period    string
	Data      []byte
	PageCount *int
	Report    report.Report
}

// Published is a document after a successful upload.
type Published struct {
	Document
	Link string
}

// Pipeline runs the capture, classify, render and upload cycle for one
// submission. Only one cycle runs at a time.
type Pipeline struct {
	def        *form.Definition
	classifier outline.Classifier
	renderer   Renderer
	uploader   Uploader
	sem        *semaphore.Weighted
	now        func() time.Time
	logger     *slog.Logger
}

// NewPipeline creates a Pipeline for submissions of def.
func NewPipeline(
	def *form.Definition,
	classifier outline.Classifier,
	renderer Renderer,
	uploader Uploader,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		def:        def,
		classifier: classifier,
		renderer:   renderer,
		uploader:   uploader,
		sem:        semaphore.NewWeighted(1),
		now:        time.Now,
		logger:     logger.With("system", "pipeline"),
	}
}

// WithClock replaces the time source used to stamp reports.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Definition returns the form definition the pipeline validates against.
func (p *Pipeline) Definition() *form.Definition {
	return p.def
}

// Build validates sub and assembles its classified report.
func (p *Pipeline) Build(sub form.Submission) (report.Report, error) {
	if err := sub.Validate(p.def); err != nil {
		return report.Report{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}

	rpt, err := report.Build(sub.Fields(p.def), p.classifier, p.now().UTC())
	if err != nil {
		return report.Report{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	return rpt, nil
}

// Render builds and renders sub without publishing it.
func (p *Pipeline) Render(sub form.Submission) (*Document, error) {
	rpt, err := p.Build(sub)
	if err != nil {
		return nil, err
	}

	data, err := p.renderer.Render(rpt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	return &Document{
		Filename:  sub.Filename(p.def, pdf.Extension),
		Team:      sub.Team(p.def),
		Period:    sub.Period(p.def),
		Data:      data,
		PageCount: p.pageCount(data),
		Report:    rpt,
	}, nil
}

// Publish renders sub and uploads it. It waits for any running cycle to
// finish; if ctx ends first the call fails with ErrBusy.
func (p *Pipeline) Publish(ctx context.Context, sub form.Submission) (*Published, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBusy, err)
	}
	defer p.sem.Release(1)

	doc, err := p.Render(sub)
	if err != nil {
		return nil, err
	}

	link, err := p.uploader.Put(ctx, doc.Data, doc.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	p.logger.Info(
		"report published",
		"filename", doc.Filename,
		"size", len(doc.Data),
		"link", link,
	)

	return &Published{Document: *doc, Link: link}, nil
}

// Preview returns the classified report of sub as Markdown and sanitized HTML.
func (p *Pipeline) Preview(sub form.Submission) (*Preview, error) {
	rpt, err := p.Build(sub)
	if err != nil {
		return nil, err
	}

	html, err := preview.HTML(rpt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	return &Preview{
		Filename: sub.Filename(p.def, pdf.Extension),
		Markdown: preview.Markdown(rpt),
		HTML:     html,
	}, nil
}

func (p *Pipeline) pageCount(data []byte) *int {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		p.logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}
	return &count
}
