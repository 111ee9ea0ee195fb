package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/spotlight/pkg/formatting"
	"github.com/JaimeStill/spotlight/pkg/middleware"
	"github.com/JaimeStill/spotlight/pkg/module"
	"github.com/JaimeStill/spotlight/pkg/openapi"
	"github.com/JaimeStill/spotlight/pkg/pagination"
)

const (
	EnvAPIBasePath    = "SPOTLIGHT_API_BASE_PATH"
	EnvAPIMaxBodySize = "SPOTLIGHT_API_MAX_BODY_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SPOTLIGHT_CORS_ENABLED",
	Origins:          "SPOTLIGHT_CORS_ORIGINS",
	AllowedMethods:   "SPOTLIGHT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SPOTLIGHT_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SPOTLIGHT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SPOTLIGHT_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "SPOTLIGHT_OPENAPI_TITLE",
	Description: "SPOTLIGHT_OPENAPI_DESCRIPTION",
}

var paginationEnv = &pagination.Env{
	DefaultPageSize: "SPOTLIGHT_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SPOTLIGHT_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, request limits, CORS, pagination, and
// OpenAPI document settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize formatting.ByteSize   `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	if err := module.ValidatePrefix(c.BasePath); err != nil {
		return err
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != 0 {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = 1 << 20
	}
}

func (c *APIConfig) loadEnv() error {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		if err := c.MaxBodySize.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid max_body_size: %w", err)
		}
	}
	return nil
}
