package pdf

import (
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// maxRune is the last code point fpdf can encode for UTF-8 fonts.
const maxRune = 0xFFFF

// face is one embedded TrueType font and its glyph table.
type face struct {
	name string
	data []byte
	font *sfnt.Font
	buf  sfnt.Buffer
}

// loadFaces returns the regular and bold faces. Empty paths select the
// bundled Go fonts.
func loadFaces(regularPath, boldPath string) (regular, bold *face, err error) {
	if regularPath == "" && boldPath == "" {
		if regular, err = parseFace("Go Regular", goregular.TTF); err != nil {
			return nil, nil, err
		}
		if bold, err = parseFace("Go Bold", gobold.TTF); err != nil {
			return nil, nil, err
		}
		return regular, bold, nil
	}

	if regular, err = readFace(regularPath); err != nil {
		return nil, nil, err
	}
	if bold, err = readFace(boldPath); err != nil {
		return nil, nil, err
	}
	return regular, bold, nil
}

func readFace(path string) (*face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: font %s: %w", ErrMalformedAsset, path, err)
	}
	return parseFace(path, data)
}

func parseFace(name string, data []byte) (*face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: font %s: %w", ErrMalformedAsset, name, err)
	}
	return &face{name: name, data: data, font: f}, nil
}

// missing returns the first rune of s the face has no glyph for.
func (f *face) missing(s string) (rune, bool) {
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if r == utf8.RuneError || r > maxRune {
			return r, true
		}
		idx, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil || idx == 0 {
			return r, true
		}
	}
	return 0, false
}
