package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/spotlight/pkg/formatting"
)

func newInspectCmd() *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Show page count, size, and text of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			pages, err := api.PageCount(bytes.NewReader(data), nil)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:  %s\n", args[0])
			fmt.Fprintf(out, "size:  %s\n", formatting.FormatBytes(int64(len(data)), 1))
			fmt.Fprintf(out, "pages: %d\n", pages)

			if !text {
				return nil
			}

			extracted, err := extractText(data)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "text extraction failed: %v\n", err)
				return nil
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, extracted)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&text, "text", "t", false, "print the extracted text of every page")
	return cmd
}

func extractText(data []byte) (string, error) {
	r, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, strings.TrimSpace(content))
	}
	return strings.Join(pages, "\n\f\n"), nil
}
