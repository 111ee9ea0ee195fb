package pagination

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrInvalidConfig reports page size limits that cannot serve a listing.
var ErrInvalidConfig = errors.New("invalid pagination config")

// Config bounds the page sizes clients may request when listing reports.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// Env names the environment variables that override Config.
type Env struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Finalize fills unset sizes with 20 and 100, applies env and rejects a
// default larger than the maximum.
func (c *Config) Finalize(env *Env) error {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 20
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}

	if env != nil {
		setInt(&c.DefaultPageSize, env.DefaultPageSize)
		setInt(&c.MaxPageSize, env.MaxPageSize)
	}

	switch {
	case c.DefaultPageSize < 1 || c.MaxPageSize < 1:
		return fmt.Errorf("%w: page sizes must be positive, got default %d max %d",
			ErrInvalidConfig, c.DefaultPageSize, c.MaxPageSize)
	case c.DefaultPageSize > c.MaxPageSize:
		return fmt.Errorf("%w: default_page_size %d exceeds max_page_size %d",
			ErrInvalidConfig, c.DefaultPageSize, c.MaxPageSize)
	}
	return nil
}

// Merge applies the non-zero sizes of overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func setInt(dst *int, name string) {
	if name == "" {
		return
	}
	if n, err := strconv.Atoi(os.Getenv(name)); err == nil {
		*dst = n
	}
}
