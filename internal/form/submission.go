package form

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/JaimeStill/spotlight/pkg/report"
)

// Submission holds the raw answers of one form, keyed by field key.
type Submission struct {
	Values map[string]string `json:"values" yaml:"values"`
}

// Get returns the trimmed value for key.
func (s Submission) Get(key string) string {
	return strings.TrimSpace(s.Values[key])
}

// Clone returns a copy that shares no state with s.
func (s Submission) Clone() Submission {
	return Submission{Values: maps.Clone(s.Values)}
}

// Team returns the team answer.
func (s Submission) Team(def *Definition) string {
	return s.Get(def.TeamKey)
}

// Period returns the reporting period answer.
func (s Submission) Period(def *Definition) string {
	return s.Get(def.PeriodKey)
}

// Validate checks the submission against def. A blank team is reported
// alone; every other problem is joined into one error.
func (s Submission) Validate(def *Definition) error {
	if s.Team(def) == "" {
		return ErrTeamRequired
	}

	var errs []error

	keys := slices.Sorted(maps.Keys(s.Values))
	for _, key := range keys {
		if _, ok := def.Field(key); !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownField, key))
		}
	}

	for _, f := range def.Fields {
		v := s.Get(f.Key)
		switch f.Type {
		case TypeSelect:
			if v != "" && !slices.Contains(f.Options, v) {
				errs = append(errs, fmt.Errorf("%s: %w: %q", f.Key, ErrInvalidOption, v))
			}
		case TypeNumber:
			n, err := strconv.Atoi(v)
			if err != nil || n < f.Min {
				errs = append(errs, fmt.Errorf("%s: %w: %q (min %d)", f.Key, ErrInvalidNumber, v, f.Min))
			}
		}
	}

	return errors.Join(errs...)
}

// Fields returns the answers as report fields in definition order. Number
// answers are scalar.
func (s Submission) Fields(def *Definition) []report.Field {
	fields := make([]report.Field, len(def.Fields))
	for i, f := range def.Fields {
		fields[i] = report.Field{
			Label:  f.Label,
			Value:  s.Values[f.Key],
			Scalar: f.Type == TypeNumber,
		}
	}
	return fields
}

// Filename returns the published name {team}_{period}.{ext}.
func (s Submission) Filename(def *Definition, ext string) string {
	return report.Filename(s.Team(def), s.Period(def), ext)
}
