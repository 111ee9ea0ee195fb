package outline

import (
	"regexp"
	"strings"
)

// DefaultCenterFields is the number of leading fields whose paragraphs are
// centered. Those are the identity fields of a report (team, leader, coach,
// member count, period).
const DefaultCenterFields = 5

// Line patterns, evaluated top to bottom. The first match wins and any line
// matching neither falls through to a paragraph.
var (
	numberedPattern = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	bulletPattern   = regexp.MustCompile(`^[-•]\s+(.+)$`)
)

// Classifier turns field values into blocks.
// Fields at zero-based position below CenterFields produce centered
// paragraphs; later fields produce justified paragraphs.
type Classifier struct {
	CenterFields int
}

// New returns a Classifier that centers the first centerFields fields.
// Non-positive values select DefaultCenterFields.
func New(centerFields int) Classifier {
	if centerFields <= 0 {
		centerFields = DefaultCenterFields
	}
	return Classifier{CenterFields: centerFields}
}

// Alignment returns the paragraph alignment for the field at position.
func (c Classifier) Alignment(position int) Alignment {
	if position < c.CenterFields {
		return AlignCenter
	}
	return AlignJustify
}

// Classify splits text into trimmed, non-empty lines and classifies each one.
// Numbered items are renumbered from 1 for every run of consecutive numbered
// lines; the numerals typed by the author are discarded.
func (c Classifier) Classify(text string, position int) []Block {
	var (
		blocks []Block
		seq    int
	)

	for _, line := range Lines(text) {
		if m := numberedPattern.FindStringSubmatch(line); m != nil {
			seq++
			blocks = append(blocks, Numbered(seq, m[1]))
			continue
		}
		seq = 0

		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Bullet(m[1]))
			continue
		}

		blocks = append(blocks, Paragraph(line, c.Alignment(position)))
	}

	return blocks
}

// ClassifyScalar returns a single paragraph for a scalar value such as a
// count. The value is never split into lines. A blank value yields no blocks.
func (c Classifier) ClassifyScalar(value string, position int) []Block {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return []Block{Paragraph(value, c.Alignment(position))}
}

// Lines splits text on newlines and returns the trimmed lines that are not
// empty.
func Lines(text string) []string {
	var lines []string
	for line := range strings.SplitSeq(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
