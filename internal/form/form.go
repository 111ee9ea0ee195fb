// Package form defines the progress report form and validates submissions
// against it.
package form

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed form.yaml
var defaultForm []byte

// Type identifies the input control of a field.
type Type string

const (
	TypeSelect   Type = "select"
	TypeNumber   Type = "number"
	TypeTextarea Type = "textarea"
)

// Field is one input of the form. Label is the heading used in the
// published report; Prompt is the caption shown on the input.
type Field struct {
	Key     string   `yaml:"key" json:"key"`
	Label   string   `yaml:"label" json:"label"`
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Type    Type     `yaml:"type" json:"type"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
	Min     int      `yaml:"min,omitempty" json:"min,omitempty"`
	Heading string   `yaml:"heading,omitempty" json:"heading,omitempty"`
}

// Caption returns the prompt, or the label when no prompt is set.
func (f Field) Caption() string {
	if f.Prompt != "" {
		return f.Prompt
	}
	return f.Label
}

// Definition is the ordered field list of the form. TeamKey and PeriodKey
// name the fields that make up the published filename.
type Definition struct {
	Title     string  `yaml:"title" json:"title"`
	Subtitle  string  `yaml:"subtitle" json:"subtitle"`
	TeamKey   string  `yaml:"team_key" json:"team_key"`
	PeriodKey string  `yaml:"period_key" json:"period_key"`
	Fields    []Field `yaml:"fields" json:"fields"`

	index map[string]int
}

// Group is a run of consecutive fields under one heading.
type Group struct {
	Heading string
	Fields  []Field
}

// Default returns the embedded form definition.
func Default() (*Definition, error) {
	return Parse(defaultForm)
}

// Load reads a definition from path, or returns the embedded definition
// when path is empty.
func Load(path string) (*Definition, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML form definition.
func Parse(data []byte) (*Definition, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidForm)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	if err := def.normalize(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Field returns the field with the given key.
func (d *Definition) Field(key string) (Field, bool) {
	i, ok := d.index[key]
	if !ok {
		return Field{}, false
	}
	return d.Fields[i], true
}

// Groups splits the fields into runs that start at each heading.
func (d *Definition) Groups() []Group {
	var groups []Group
	for _, f := range d.Fields {
		if len(groups) == 0 || f.Heading != "" {
			groups = append(groups, Group{Heading: f.Heading})
		}
		last := &groups[len(groups)-1]
		last.Fields = append(last.Fields, f)
	}
	return groups
}

func (d *Definition) normalize() error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidForm)
	}

	d.index = make(map[string]int, len(d.Fields))
	labels := make(map[string]struct{}, len(d.Fields))

	for i := range d.Fields {
		f := &d.Fields[i]
		f.Key = strings.TrimSpace(f.Key)
		f.Label = strings.TrimSpace(f.Label)

		if f.Key == "" {
			return fmt.Errorf("%w: field %d has an empty key", ErrInvalidForm, i)
		}
		if f.Label == "" {
			return fmt.Errorf("%w: field %q has an empty label", ErrInvalidForm, f.Key)
		}
		if _, exists := d.index[f.Key]; exists {
			return fmt.Errorf("%w: duplicate field key %q", ErrInvalidForm, f.Key)
		}
		if _, exists := labels[f.Label]; exists {
			return fmt.Errorf("%w: duplicate field label %q", ErrInvalidForm, f.Label)
		}

		switch f.Type {
		case TypeSelect:
			if len(f.Options) == 0 {
				return fmt.Errorf("%w: select %q has no options", ErrInvalidForm, f.Key)
			}
		case TypeNumber, TypeTextarea:
		case "":
			f.Type = TypeTextarea
		default:
			return fmt.Errorf("%w: field %q has unknown type %q", ErrInvalidForm, f.Key, f.Type)
		}

		d.index[f.Key] = i
		labels[f.Label] = struct{}{}
	}

	if _, ok := d.index[d.TeamKey]; !ok {
		return fmt.Errorf("%w: team_key %q does not name a field", ErrInvalidForm, d.TeamKey)
	}
	if _, ok := d.index[d.PeriodKey]; !ok {
		return fmt.Errorf("%w: period_key %q does not name a field", ErrInvalidForm, d.PeriodKey)
	}
	return nil
}
