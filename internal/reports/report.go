// Package reports implements the publishing domain for SPOT Light.
// It turns form submissions into rendered PDFs, uploads them to blob
// storage, and keeps a registry of every published report.
package reports

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/spotlight/internal/form"
)

// Report is a registry entry for one published document. Team and period
// identify the report; re-publishing the same pair replaces the entry.
type Report struct {
	ID          uuid.UUID       `json:"id"`
	Team        string          `json:"team"`
	Period      string          `json:"period"`
	Filename    string          `json:"filename"`
	StorageKey  string          `json:"storage_key"`
	URL         string          `json:"url"`
	ContentType string          `json:"content_type"`
	SizeBytes   int64           `json:"size_bytes"`
	PageCount   *int            `json:"page_count"`
	Submission  form.Submission `json:"submission"`
	CreatedAt   time.Time       `json:"created_at"`
	PublishedAt time.Time       `json:"published_at"`
}

// Preview is the classified report rendered for on-screen review.
type Preview struct {
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}
