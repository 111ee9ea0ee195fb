package reports

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/spotlight/pkg/query"
	"github.com/JaimeStill/spotlight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reports", "r").
	Project("id", "ID").
	Project("team", "Team").
	Project("period", "Period").
	Project("filename", "Filename").
	Project("storage_key", "StorageKey").
	Project("url", "URL").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("submission", "Submission").
	Project("created_at", "CreatedAt").
	Project("published_at", "PublishedAt")

var defaultSort = query.SortField{
	Field:      "PublishedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for report queries.
// Team and Period use exact matching; Filename uses case-insensitive
// contains matching.
type Filters struct {
	Team     *string `json:"team,omitempty"`
	Period   *string `json:"period,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Team", f.Team).
		WhereEquals("Period", f.Period).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("team"); t != "" {
		f.Team = &t
	}

	if p := values.Get("period"); p != "" {
		f.Period = &p
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	return f
}

func scanReport(s repository.Scanner) (Report, error) {
	var (
		r   Report
		raw []byte
	)

	err := s.Scan(
		&r.ID,
		&r.Team,
		&r.Period,
		&r.Filename,
		&r.StorageKey,
		&r.URL,
		&r.ContentType,
		&r.SizeBytes,
		&r.PageCount,
		&raw,
		&r.CreatedAt,
		&r.PublishedAt,
	)
	if err != nil {
		return r, err
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &r.Submission); err != nil {
			return r, fmt.Errorf("decode submission: %w", err)
		}
	}
	return r, nil
}
