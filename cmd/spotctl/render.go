package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/spotlight/internal/config"
	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/internal/reports"
	"github.com/JaimeStill/spotlight/pkg/formatting"
	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/preview"
)

type renderOptions struct {
	input    string
	output   string
	dir      string
	markdown bool
}

func newRenderCmd(g *globals) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a YAML submission to PDF",
		Long: `Render validates a submission file against the form definition and writes
the PDF the server would publish for it.

The submission is YAML with the answers under "values", keyed by field key:

  values:
    team: "[DS] Tim Data Science"
    period: "Maret 2025"
    members: "6"
    progress: |
      1. Scoping
      2. Modelling

Without --output the file is written to --dir using the published name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "submission YAML file, - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF path")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "output directory when --output is empty")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "print the classified report as Markdown instead")

	return cmd
}

func runRender(cmd *cobra.Command, g *globals, opts *renderOptions) error {
	cfg, err := config.LoadRendering(g.configPath)
	if err != nil {
		return err
	}

	def, err := form.Load(cfg.Report.FormPath)
	if err != nil {
		return err
	}

	sub, err := readSubmission(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}

	logger := g.logger(cmd.ErrOrStderr())
	pipeline := reports.NewPipeline(def, cfg.Report.Classifier(), pdf.NewRenderer(&cfg.Render, logger), nil, logger)

	if opts.markdown {
		rpt, err := pipeline.Build(sub)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), preview.Markdown(rpt))
		return err
	}

	doc, err := pipeline.Render(sub)
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = filepath.Join(opts.dir, doc.Filename)
	}
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	pages := "unknown"
	if doc.PageCount != nil {
		pages = fmt.Sprint(*doc.PageCount)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %s pages)\n", path, formatting.FormatBytes(int64(len(doc.Data)), 1), pages)
	return nil
}

func readSubmission(stdin io.Reader, path string) (form.Submission, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return form.Submission{}, fmt.Errorf("read submission: %w", err)
	}

	var sub form.Submission
	if err := yaml.Unmarshal(data, &sub); err != nil {
		return form.Submission{}, fmt.Errorf("parse submission: %w", err)
	}
	if sub.Values == nil {
		return form.Submission{}, fmt.Errorf("parse submission: no values")
	}
	return sub, nil
}
