package config

import (
	"os"
	"strconv"

	"github.com/JaimeStill/spotlight/pkg/module"
)

const (
	EnvWebEnabled  = "SPOTLIGHT_WEB_ENABLED"
	EnvWebBasePath = "SPOTLIGHT_WEB_BASE_PATH"
)

// WebConfig holds settings for the form page module.
type WebConfig struct {
	Enabled  *bool  `toml:"enabled"`
	BasePath string `toml:"base_path"`
}

// On reports whether the form page is served. It defaults to true.
func (c *WebConfig) On() bool {
	return c.Enabled == nil || *c.Enabled
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WebConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return module.ValidatePrefix(c.BasePath)
}

// Merge overwrites set fields from overlay.
func (c *WebConfig) Merge(overlay *WebConfig) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
}

func (c *WebConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/app"
	}
}

func (c *WebConfig) loadEnv() {
	if v := os.Getenv(EnvWebEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = &enabled
		}
	}
	if v := os.Getenv(EnvWebBasePath); v != "" {
		c.BasePath = v
	}
}
