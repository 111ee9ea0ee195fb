package pdf

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the document assets and page settings used by the Renderer.
// Fonts are always embedded as UTF-8 TrueType: regular_font and bold_font
// replace the bundled Go Regular and Go Bold pair. Without a logo the
// header carries only the title and subtitle.
type Config struct {
	Title              string  `toml:"title"`
	Subtitle           string  `toml:"subtitle"`
	Footer             string  `toml:"footer"`
	LogoPath           string  `toml:"logo_path"`
	RegularFont        string  `toml:"regular_font"`
	BoldFont           string  `toml:"bold_font"`
	PageSize           string  `toml:"page_size"`
	FontSize           float64 `toml:"font_size"`
	DisableCompression bool    `toml:"disable_compression"`
	SkipEmptySections  bool    `toml:"skip_empty_sections"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Title              string
	Subtitle           string
	Footer             string
	LogoPath           string
	RegularFont        string
	BoldFont           string
	PageSize           string
	FontSize           string
	DisableCompression string
	SkipEmptySections  string
}

// Assets returns the header and footer assets described by the config.
func (c *Config) Assets() Assets {
	return Assets{
		Title:    c.Title,
		Subtitle: c.Subtitle,
		LogoPath: c.LogoPath,
		Footer:   c.Footer,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Subtitle != "" {
		c.Subtitle = overlay.Subtitle
	}
	if overlay.Footer != "" {
		c.Footer = overlay.Footer
	}
	if overlay.LogoPath != "" {
		c.LogoPath = overlay.LogoPath
	}
	if overlay.RegularFont != "" {
		c.RegularFont = overlay.RegularFont
	}
	if overlay.BoldFont != "" {
		c.BoldFont = overlay.BoldFont
	}
	if overlay.PageSize != "" {
		c.PageSize = overlay.PageSize
	}
	if overlay.FontSize != 0 {
		c.FontSize = overlay.FontSize
	}
	if overlay.DisableCompression {
		c.DisableCompression = true
	}
	if overlay.SkipEmptySections {
		c.SkipEmptySections = true
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "SPOT Light"
	}
	if c.Subtitle == "" {
		c.Subtitle = "Summary of Progress & Objectives Tracker"
	}
	if c.Footer == "" {
		c.Footer = "Generated by SPOT Light"
	}
	if c.PageSize == "" {
		c.PageSize = "A4"
	}
	if c.FontSize == 0 {
		c.FontSize = 10
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Title != "" {
		if v := os.Getenv(env.Title); v != "" {
			c.Title = v
		}
	}
	if env.Subtitle != "" {
		if v := os.Getenv(env.Subtitle); v != "" {
			c.Subtitle = v
		}
	}
	if env.Footer != "" {
		if v := os.Getenv(env.Footer); v != "" {
			c.Footer = v
		}
	}
	if env.LogoPath != "" {
		if v := os.Getenv(env.LogoPath); v != "" {
			c.LogoPath = v
		}
	}
	if env.RegularFont != "" {
		if v := os.Getenv(env.RegularFont); v != "" {
			c.RegularFont = v
		}
	}
	if env.BoldFont != "" {
		if v := os.Getenv(env.BoldFont); v != "" {
			c.BoldFont = v
		}
	}
	if env.PageSize != "" {
		if v := os.Getenv(env.PageSize); v != "" {
			c.PageSize = v
		}
	}
	if env.FontSize != "" {
		if v := os.Getenv(env.FontSize); v != "" {
			if size, err := strconv.ParseFloat(v, 64); err == nil {
				c.FontSize = size
			}
		}
	}
	if env.DisableCompression != "" {
		if v := os.Getenv(env.DisableCompression); v != "" {
			if disabled, err := strconv.ParseBool(v); err == nil {
				c.DisableCompression = disabled
			}
		}
	}
	if env.SkipEmptySections != "" {
		if v := os.Getenv(env.SkipEmptySections); v != "" {
			if skip, err := strconv.ParseBool(v); err == nil {
				c.SkipEmptySections = skip
			}
		}
	}
}

func (c *Config) validate() error {
	if (c.RegularFont == "") != (c.BoldFont == "") {
		return fmt.Errorf("regular_font and bold_font must be set together")
	}
	if c.FontSize < 6 || c.FontSize > 24 {
		return fmt.Errorf("invalid font_size: %v", c.FontSize)
	}
	switch c.PageSize {
	case "A4", "A5", "Letter", "Legal":
	default:
		return fmt.Errorf("unsupported page_size: %s", c.PageSize)
	}
	return nil
}
