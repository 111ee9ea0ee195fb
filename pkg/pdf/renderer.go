// Package pdf renders classified reports into paginated PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/JaimeStill/spotlight/pkg/outline"
	"github.com/JaimeStill/spotlight/pkg/report"
)

// ContentType is the MIME type of rendered documents.
const ContentType = "application/pdf"

// Extension is the filename suffix of rendered documents.
const Extension = "pdf"

const (
	marginLeft   = 30.0
	marginRight  = 30.0
	marginTop    = 50.0
	marginBottom = 30.0

	logoSize    = 60.0
	listIndent  = 20.0
	markerWidth = 14.0
	markerGap   = 6.0

	titleSize    = 20.0
	subtitleSize = 14.0
	headingSize  = 13.0
	footerSize   = 8.0

	bodyFamily = "body"
)

// Assets are the fixed header and footer elements of a document.
// LogoPath is optional.
type Assets struct {
	Title    string
	Subtitle string
	LogoPath string
	Footer   string
}

// Renderer maps a report.Report to PDF bytes. It holds no per-document state;
// every call loads its assets and builds the document from scratch.
type Renderer struct {
	cfg    Config
	logger *slog.Logger
}

// NewRenderer creates a Renderer from a finalized Config.
func NewRenderer(cfg *Config, logger *slog.Logger) *Renderer {
	return &Renderer{
		cfg:    *cfg,
		logger: logger.With("system", "pdf"),
	}
}

// Render renders the report with the configured assets.
func (r *Renderer) Render(rpt report.Report) ([]byte, error) {
	return r.RenderWith(rpt, r.cfg.Assets())
}

// RenderWith renders the report with the given header and footer assets.
// The output depends only on its inputs: rendering the same report twice
// yields identical bytes. Text the fonts cannot draw fails the render with
// ErrUnsupportedText. On failure no partial output is returned.
func (r *Renderer) RenderWith(rpt report.Report, assets Assets) (data []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			data = nil
			err = fmt.Errorf("%w: %v", ErrRenderFailed, p)
		}
	}()

	doc, err := r.newDocument(rpt.GeneratedAt, assets)
	if err != nil {
		return nil, err
	}

	if err := doc.header(assets); err != nil {
		return nil, err
	}

	for _, section := range rpt.Sections {
		if section.Empty() && r.cfg.SkipEmptySections {
			continue
		}
		doc.section(section)
	}

	doc.footer(assets.Footer)

	if doc.err != nil {
		return nil, doc.err
	}

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	r.logger.Debug(
		"document rendered",
		"sections", len(rpt.Sections),
		"pages", doc.pdf.PageCount(),
		"bytes", buf.Len(),
	)

	return buf.Bytes(), nil
}

type document struct {
	pdf      *fpdf.Fpdf
	regular  *face
	bold     *face
	current  *face
	fontSize float64
	err      error
}

func (r *Renderer) newDocument(generatedAt time.Time, assets Assets) (*document, error) {
	regular, bold, err := loadFaces(r.cfg.RegularFont, r.cfg.BoldFont)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", r.cfg.PageSize, "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCompression(!r.cfg.DisableCompression)
	pdf.SetCatalogSort(true)

	if generatedAt.IsZero() {
		generatedAt = time.Unix(0, 0)
	}
	generatedAt = generatedAt.UTC()
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetTitle(assets.Title, true)
	pdf.SetCreator(assets.Title, true)

	for _, f := range []struct {
		style string
		face  *face
	}{
		{"", regular},
		{"B", bold},
	} {
		pdf.AddUTF8FontFromBytes(bodyFamily, f.style, f.face.data)
		if pdf.Err() {
			return nil, fmt.Errorf("%w: font %s: %w", ErrMalformedAsset, f.face.name, pdf.Error())
		}
	}

	pdf.AddPage()

	return &document{
		pdf:      pdf,
		regular:  regular,
		bold:     bold,
		current:  regular,
		fontSize: r.cfg.FontSize,
	}, nil
}

func (d *document) setFont(bold bool, size float64) {
	style := ""
	d.current = d.regular
	if bold {
		style = "B"
		d.current = d.bold
	}
	d.pdf.SetFont(bodyFamily, style, size)
}

// text returns s for drawing with the current face. The first rune the
// face cannot draw is recorded and fails the render.
func (d *document) text(s string) string {
	if d.err == nil {
		if r, ok := d.current.missing(s); ok {
			d.err = fmt.Errorf("%w: %q (U+%04X) has no glyph in %s", ErrUnsupportedText, r, r, d.current.name)
		}
	}
	return s
}

func (d *document) header(assets Assets) error {
	if assets.LogoPath != "" {
		if err := d.logo(assets.LogoPath); err != nil {
			return err
		}
	}

	d.setFont(true, titleSize)
	d.pdf.CellFormat(0, titleSize*1.3, d.text(assets.Title), "", 1, "C", false, 0, "")
	d.pdf.Ln(2)

	d.setFont(true, subtitleSize)
	d.pdf.CellFormat(0, subtitleSize*1.3, d.text(assets.Subtitle), "", 1, "C", false, 0, "")
	d.pdf.Ln(16)

	return nil
}

func (d *document) logo(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: logo %s: %w", ErrMalformedAsset, path, err)
	}

	imageType, err := imageType(data)
	if err != nil {
		return fmt.Errorf("%w: logo %s: %w", ErrMalformedAsset, path, err)
	}

	opts := fpdf.ImageOptions{ImageType: imageType}
	d.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
	if d.pdf.Err() {
		return fmt.Errorf("%w: logo %s: %w", ErrMalformedAsset, path, d.pdf.Error())
	}

	pageWidth, _ := d.pdf.GetPageSize()
	x := (pageWidth - logoSize) / 2
	d.pdf.ImageOptions("logo", x, d.pdf.GetY(), logoSize, logoSize, true, opts, 0, "")
	d.pdf.Ln(6)

	return nil
}

func (d *document) section(s report.Section) {
	d.setFont(true, headingSize)
	d.pdf.MultiCell(0, headingSize*1.4, d.text(s.Label), "", "L", false)
	d.pdf.Ln(6)

	d.setFont(false, d.fontSize)
	for _, run := range outline.Runs(s.Blocks) {
		switch run.Kind {
		case outline.KindNumbered, outline.KindBullet:
			d.list(run)
		default:
			for _, b := range run.Blocks {
				d.paragraph(b)
			}
		}
	}

	d.pdf.Ln(12)
}

// list emits one run as a continuous list. Numbered runs count from 1 by
// their position in the run.
func (d *document) list(run outline.Run) {
	left, _, _, _ := d.pdf.GetMargins()
	lineHeight := d.lineHeight()

	for i, b := range run.Blocks {
		marker := "•"
		if run.Kind == outline.KindNumbered {
			marker = fmt.Sprintf("%d.", i+1)
		}

		d.pdf.SetX(left + listIndent - markerWidth)
		d.pdf.CellFormat(markerWidth, lineHeight, d.text(marker), "", 0, "R", false, 0, "")
		d.pdf.SetX(left + listIndent + markerGap)
		d.pdf.MultiCell(0, lineHeight, d.text(b.Text), "", "J", false)
	}

	d.pdf.Ln(2)
}

func (d *document) paragraph(b outline.Block) {
	align := "J"
	if b.Align == outline.AlignCenter {
		align = "C"
	}
	d.pdf.MultiCell(0, d.lineHeight(), d.text(b.Text), "", align, false)
}

func (d *document) footer(text string) {
	left, _, right, _ := d.pdf.GetMargins()
	pageWidth, _ := d.pdf.GetPageSize()

	d.pdf.Ln(8)
	y := d.pdf.GetY()
	d.pdf.SetDrawColor(160, 160, 160)
	d.pdf.SetLineWidth(0.5)
	d.pdf.Line(left, y, pageWidth-right, y)
	d.pdf.Ln(6)

	d.setFont(false, footerSize)
	d.pdf.SetTextColor(110, 110, 110)
	d.pdf.CellFormat(0, footerSize*1.5, d.text(text), "", 1, "C", false, 0, "")
}

func (d *document) lineHeight() float64 {
	return d.fontSize * 1.4
}
