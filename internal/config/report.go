package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/spotlight/pkg/outline"
)

const (
	EnvReportCenterFields = "SPOTLIGHT_REPORT_CENTER_FIELDS"
	EnvReportFormPath     = "SPOTLIGHT_REPORT_FORM_PATH"
)

// ReportConfig controls how submissions become reports.
type ReportConfig struct {
	// CenterFields is the number of leading fields whose paragraphs are centered.
	CenterFields int `toml:"center_fields"`
	// FormPath points at an alternate form definition. Empty uses the embedded form.
	FormPath string `toml:"form_path"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ReportConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ReportConfig) Merge(overlay *ReportConfig) {
	if overlay.CenterFields != 0 {
		c.CenterFields = overlay.CenterFields
	}
	if overlay.FormPath != "" {
		c.FormPath = overlay.FormPath
	}
}

// Classifier returns the outline classifier described by the config.
func (c *ReportConfig) Classifier() outline.Classifier {
	return outline.New(c.CenterFields)
}

func (c *ReportConfig) loadDefaults() {
	if c.CenterFields == 0 {
		c.CenterFields = outline.DefaultCenterFields
	}
}

func (c *ReportConfig) loadEnv() {
	if v := os.Getenv(EnvReportCenterFields); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CenterFields = n
		}
	}
	if v := os.Getenv(EnvReportFormPath); v != "" {
		c.FormPath = v
	}
}

func (c *ReportConfig) validate() error {
	if c.CenterFields < 1 {
		return fmt.Errorf("invalid center_fields: %d", c.CenterFields)
	}
	if c.FormPath != "" {
		if _, err := os.Stat(c.FormPath); err != nil {
			return fmt.Errorf("form_path: %w", err)
		}
	}
	return nil
}
