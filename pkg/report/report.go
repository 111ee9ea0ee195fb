// Package report assembles classified report fields into an immutable
// Report ready for rendering.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/spotlight/pkg/outline"
)

// Errors returned by Build.
var (
	ErrEmptyLabel     = errors.New("field label must not be empty")
	ErrDuplicateLabel = errors.New("duplicate field label")
)

// Field is one labeled answer of a report. Scalar values (such as a member
// count) are rendered as a single paragraph and never split into lines.
type Field struct {
	Label  string `json:"label" yaml:"label"`
	Value  string `json:"value" yaml:"value"`
	Scalar bool   `json:"scalar,omitempty" yaml:"scalar,omitempty"`
}

// Section pairs a field label with its classified blocks.
type Section struct {
	Label  string          `json:"label"`
	Blocks []outline.Block `json:"blocks"`
}

// Empty reports whether the section has no content.
func (s Section) Empty() bool {
	return len(s.Blocks) == 0
}

// Report is the ordered set of classified sections for one submission.
// A Report is built once and must not be modified afterwards.
type Report struct {
	Sections    []Section `json:"sections"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Empty reports whether the report has no sections.
func (r Report) Empty() bool {
	return len(r.Sections) == 0
}

// Build classifies each field by its ordinal position and returns the Report.
func Build(fields []Field, c outline.Classifier, generatedAt time.Time) (Report, error) {
	seen := make(map[string]struct{}, len(fields))
	sections := make([]Section, 0, len(fields))

	for i, f := range fields {
		label := strings.TrimSpace(f.Label)
		if label == "" {
			return Report{}, fmt.Errorf("field %d: %w", i, ErrEmptyLabel)
		}
		if _, ok := seen[label]; ok {
			return Report{}, fmt.Errorf("%w: %s", ErrDuplicateLabel, label)
		}
		seen[label] = struct{}{}

		var blocks []outline.Block
		if f.Scalar {
			blocks = c.ClassifyScalar(f.Value, i)
		} else {
			blocks = c.Classify(f.Value, i)
		}

		sections = append(sections, Section{
			Label:  label,
			Blocks: blocks,
		})
	}

	return Report{
		Sections:    sections,
		GeneratedAt: generatedAt,
	}, nil
}

// Filename returns the published name for a report: {team}_{period}.{ext}.
// Path separators in team or period are replaced so the name stays a single
// path segment.
func Filename(team, period, ext string) string {
	clean := strings.NewReplacer("/", "-", "\\", "-")
	name := clean.Replace(strings.TrimSpace(team)) + "_" + clean.Replace(strings.TrimSpace(period))
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		name += "." + ext
	}
	return name
}
