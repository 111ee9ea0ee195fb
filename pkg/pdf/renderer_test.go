package pdf_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/JaimeStill/spotlight/pkg/outline"
	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/report"
)

var generated = time.Date(2025, 3, 31, 8, 0, 0, 0, time.UTC)

func newRenderer(t *testing.T, mutate func(*pdf.Config)) *pdf.Renderer {
	t.Helper()

	cfg := pdf.Config{DisableCompression: true}
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	return pdf.NewRenderer(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func buildReport(t *testing.T, fields ...report.Field) report.Report {
	t.Helper()

	r, err := report.Build(fields, outline.New(5), generated)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return r
}

// drawnText decodes the show-text operators of an uncompressed document
// in drawing order. Tj strings are returned whole; the parts of a TJ array
// are joined into one string.
func drawnText(t *testing.T, data []byte) []string {
	t.Helper()

	// page content precedes the font and image resources
	if i := bytes.Index(data, []byte("/Type /Font")); i >= 0 {
		data = data[:i]
	}

	var (
		drawn   []string
		parts   []string
		inArray bool
	)
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '[':
			inArray, parts = true, nil
		case ']':
			rest := bytes.TrimLeft(data[i+1:], " ")
			if inArray && bytes.HasPrefix(rest, []byte("TJ")) {
				drawn = append(drawn, strings.Join(parts, ""))
			}
			inArray = false
		case '(':
			str, next := literal(data, i+1)
			i = next
			if inArray {
				parts = append(parts, str)
				continue
			}
			if bytes.HasPrefix(bytes.TrimLeft(data[i+1:], " "), []byte("Tj")) {
				drawn = append(drawn, str)
			}
		}
	}
	return drawn
}

// literal reads an escaped UTF-16BE string literal starting at i and
// returns it with the index of its closing parenthesis.
func literal(data []byte, i int) (string, int) {
	var raw []byte
	for ; i < len(data) && data[i] != ')'; i++ {
		if data[i] == '\\' && i+1 < len(data) {
			i++
			if data[i] == 'r' {
				raw = append(raw, '\r')
				continue
			}
		}
		raw = append(raw, data[i])
	}

	units := make([]uint16, 0, len(raw)/2)
	for j := 0; j+1 < len(raw); j += 2 {
		units = append(units, uint16(raw[j])<<8|uint16(raw[j+1]))
	}
	return string(utf16.Decode(units)), i
}

func count(drawn []string, text string) int {
	n := 0
	for _, d := range drawn {
		if d == text {
			n++
		}
	}
	return n
}

func render(t *testing.T, r *pdf.Renderer, rpt report.Report) []string {
	t.Helper()

	data, err := r.Render(rpt)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 8)])
	}
	return drawnText(t, data)
}

func TestRenderEmptyReport(t *testing.T) {
	drawn := render(t, newRenderer(t, nil), buildReport(t))

	want := []string{
		"SPOT Light",
		"Summary of Progress & Objectives Tracker",
		"Generated by SPOT Light",
	}
	if diff := cmp.Diff(want, drawn); diff != "" {
		t.Errorf("drawn text mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSections(t *testing.T) {
	drawn := render(t, newRenderer(t, nil), buildReport(t,
		report.Field{Label: "Nama Tim", Value: "[DS] Tim Data Science"},
		report.Field{Label: "Jumlah Anggota", Value: "6", Scalar: true},
		report.Field{Label: "Progress Bulanan", Value: "1. First\n2. Second"},
		report.Field{Label: "Target Triwulanan", Value: "4. Third\n4. Fourth"},
		report.Field{Label: "Action Points", Value: "- A\n- B"},
	))

	checks := map[string]int{
		"Nama Tim":                1,
		"[DS] Tim Data Science":   1,
		"6":                       1,
		"Progress Bulanan":        1,
		"First":                   1,
		"Fourth":                  1,
		"1.":                      2,
		"2.":                      2,
		"•":                       2,
		"A":                       1,
		"B":                       1,
		"Generated by SPOT Light": 1,
		"4.":                      0,
	}
	for text, want := range checks {
		if got := count(drawn, text); got != want {
			t.Errorf("%q drawn %d times, want %d", text, got, want)
		}
	}
}

func TestRenderPreservesOrder(t *testing.T) {
	drawn := render(t, newRenderer(t, nil), buildReport(t, report.Field{
		Label: "What went Well?",
		Value: "Intro line\n- point one\n- point two\nClosing line\n1. again\n2. twice",
	}))

	want := []string{
		"SPOT Light",
		"Summary of Progress & Objectives Tracker",
		"What went Well?",
		"Intro line",
		"•", "point one",
		"•", "point two",
		"Closing line",
		"1.", "again",
		"2.", "twice",
		"Generated by SPOT Light",
	}
	if diff := cmp.Diff(want, drawn); diff != "" {
		t.Errorf("drawn text mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderUnicode(t *testing.T) {
	drawn := render(t, newRenderer(t, nil), buildReport(t,
		report.Field{Label: "Catatan Ünïcode", Value: "Café naïve résumé\n- Жук ÆØÅ"},
	))

	for _, text := range []string{"Catatan Ünïcode", "Café naïve résumé", "Жук ÆØÅ"} {
		if got := count(drawn, text); got != 1 {
			t.Errorf("%q drawn %d times, want 1 (drawn: %q)", text, got, drawn)
		}
	}
}

func TestRenderUnsupportedText(t *testing.T) {
	tests := []struct {
		name   string
		rpt    report.Report
		assets *pdf.Assets
	}{
		{
			name: "symbols and ideographs",
			rpt:  buildReport(t, report.Field{Label: "Catatan", Value: "Ünïcode ★ 中文 emoji"}),
		},
		{
			name: "outside the basic plane",
			rpt:  buildReport(t, report.Field{Label: "Catatan", Value: "rilis 😀"}),
		},
		{
			name:   "header asset",
			rpt:    buildReport(t),
			assets: &pdf.Assets{Title: "SPOT ★ Light", Subtitle: "s", Footer: "f"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, nil)

			var (
				data []byte
				err  error
			)
			if tt.assets != nil {
				data, err = r.RenderWith(tt.rpt, *tt.assets)
			} else {
				data, err = r.Render(tt.rpt)
			}

			if !errors.Is(err, pdf.ErrUnsupportedText) {
				t.Fatalf("Render() error = %v, want ErrUnsupportedText", err)
			}
			if data != nil {
				t.Error("partial output returned on failure")
			}
		})
	}
}

func TestRenderConfiguredFonts(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "Regular.ttf")
	bold := filepath.Join(dir, "Bold.ttf")
	for path, data := range map[string][]byte{regular: goregular.TTF, bold: gobold.TTF} {
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("write font: %v", err)
		}
	}

	r := newRenderer(t, func(c *pdf.Config) {
		c.RegularFont = regular
		c.BoldFont = bold
	})
	drawn := render(t, r, buildReport(t, report.Field{Label: "Nama Tim", Value: "Tim Ünïcode"}))

	if count(drawn, "Tim Ünïcode") != 1 {
		t.Errorf("drawn text: %q", drawn)
	}
}

func TestRenderIdempotent(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		r := newRenderer(t, func(c *pdf.Config) { c.DisableCompression = !compressed })

		rpt := buildReport(t,
			report.Field{Label: "Nama Tim", Value: "[QG] Tim Quality Gates"},
			report.Field{Label: "Objective/Goal Tahunan", Value: "Paragraph one.\n1. a\n2. b\n- c"},
		)

		first, err := r.Render(rpt)
		if err != nil {
			t.Fatalf("first render: %v", err)
		}
		second, err := r.Render(rpt)
		if err != nil {
			t.Fatalf("second render: %v", err)
		}

		if !bytes.Equal(first, second) {
			t.Errorf("compressed=%v: renders differ", compressed)
		}
	}
}

func TestRenderEmptySections(t *testing.T) {
	rpt := buildReport(t,
		report.Field{Label: "Catatan", Value: " \n "},
		report.Field{Label: "Action Points", Value: "- A"},
	)

	t.Run("title emitted by default", func(t *testing.T) {
		drawn := render(t, newRenderer(t, nil), rpt)
		if got := count(drawn, "Catatan"); got != 1 {
			t.Errorf("empty section title drawn %d times, want 1", got)
		}
	})

	t.Run("skipped when configured", func(t *testing.T) {
		drawn := render(t, newRenderer(t, func(c *pdf.Config) { c.SkipEmptySections = true }), rpt)
		if got := count(drawn, "Catatan"); got != 0 {
			t.Errorf("empty section title drawn %d times, want 0", got)
		}
		if got := count(drawn, "Action Points"); got != 1 {
			t.Errorf("non-empty section title drawn %d times, want 1", got)
		}
	})
}

func TestRenderLogo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := range 4 {
		for y := range 4 {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write png: %v", err)
	}

	r := newRenderer(t, func(c *pdf.Config) { c.LogoPath = path })
	data, err := r.Render(buildReport(t))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.Contains(data, []byte("/Subtype /Image")) {
		t.Error("expected embedded logo image")
	}
}

func TestRenderMalformedAssets(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(notImage, []byte("plain text, not an image"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*pdf.Config)
	}{
		{
			name:   "missing logo",
			mutate: func(c *pdf.Config) { c.LogoPath = filepath.Join(dir, "missing.png") },
		},
		{
			name:   "logo is not an image",
			mutate: func(c *pdf.Config) { c.LogoPath = notImage },
		},
		{
			name: "font is not TrueType",
			mutate: func(c *pdf.Config) {
				c.RegularFont = notImage
				c.BoldFont = notImage
			},
		},
		{
			name: "missing fonts",
			mutate: func(c *pdf.Config) {
				c.RegularFont = filepath.Join(dir, "Regular.ttf")
				c.BoldFont = filepath.Join(dir, "Bold.ttf")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, tt.mutate)
			data, err := r.Render(buildReport(t))
			if !errors.Is(err, pdf.ErrMalformedAsset) {
				t.Fatalf("Render() error = %v, want ErrMalformedAsset", err)
			}
			if data != nil {
				t.Error("partial output returned on failure")
			}
		})
	}
}

func TestRenderWithAssets(t *testing.T) {
	r := newRenderer(t, nil)

	data, err := r.RenderWith(buildReport(t), pdf.Assets{
		Title:    "Custom Title",
		Subtitle: "Custom Subtitle",
		Footer:   "Custom Footer",
	})
	if err != nil {
		t.Fatalf("RenderWith() error = %v", err)
	}

	want := []string{"Custom Title", "Custom Subtitle", "Custom Footer"}
	if diff := cmp.Diff(want, drawnText(t, data)); diff != "" {
		t.Errorf("drawn text mismatch (-want +got):\n%s", diff)
	}
}
