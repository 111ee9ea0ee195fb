package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/spotlight/pkg/database"
	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSpotlightEnv             = "SPOTLIGHT_ENV"
	EnvSpotlightShutdownTimeout = "SPOTLIGHT_SHUTDOWN_TIMEOUT"
	EnvSpotlightVersion         = "SPOTLIGHT_VERSION"
	EnvSpotlightLogLevel        = "SPOTLIGHT_LOG_LEVEL"
)

var databaseEnv = &database.Env{
	DSN:             "SPOTLIGHT_DB_DSN",
	Host:            "SPOTLIGHT_DB_HOST",
	Port:            "SPOTLIGHT_DB_PORT",
	Name:            "SPOTLIGHT_DB_NAME",
	User:            "SPOTLIGHT_DB_USER",
	Password:        "SPOTLIGHT_DB_PASSWORD",
	SSLMode:         "SPOTLIGHT_DB_SSL_MODE",
	MaxOpenConns:    "SPOTLIGHT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SPOTLIGHT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SPOTLIGHT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SPOTLIGHT_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "SPOTLIGHT_STORAGE_CONTAINER_NAME",
	ConnectionString: "SPOTLIGHT_STORAGE_CONNECTION_STRING",
	ServiceURL:       "SPOTLIGHT_STORAGE_SERVICE_URL",
	Folder:           "SPOTLIGHT_STORAGE_FOLDER",
}

var renderEnv = &pdf.Env{
	Title:              "SPOTLIGHT_RENDER_TITLE",
	Subtitle:           "SPOTLIGHT_RENDER_SUBTITLE",
	Footer:             "SPOTLIGHT_RENDER_FOOTER",
	LogoPath:           "SPOTLIGHT_RENDER_LOGO_PATH",
	RegularFont:        "SPOTLIGHT_RENDER_REGULAR_FONT",
	BoldFont:           "SPOTLIGHT_RENDER_BOLD_FONT",
	PageSize:           "SPOTLIGHT_RENDER_PAGE_SIZE",
	FontSize:           "SPOTLIGHT_RENDER_FONT_SIZE",
	DisableCompression: "SPOTLIGHT_RENDER_DISABLE_COMPRESSION",
	SkipEmptySections:  "SPOTLIGHT_RENDER_SKIP_EMPTY_SECTIONS",
}

// Config is the root configuration for the SPOT Light service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Web             WebConfig       `toml:"web"`
	Render          pdf.Config      `toml:"render"`
	Report          ReportConfig    `toml:"report"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
	LogLevel        string          `toml:"log_level"`
}

// Env returns the SPOTLIGHT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSpotlightEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads config.toml from the working directory (if present), applies
// any environment overlay, and finalizes all values. Without config.toml,
// defaults and environment variables provide all configuration.
func Load() (*Config, error) {
	cfg, err := read(BaseConfigFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadRendering reads the config at path (config.toml when empty) and
// finalizes only the sections needed to render reports offline. Storage
// and database settings are left untouched.
func LoadRendering(path string) (*Config, error) {
	if path == "" {
		path = BaseConfigFile
	}

	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.finalizeRendering(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Web.Merge(&overlay.Web)
	c.Render.Merge(&overlay.Render)
	c.Report.Merge(&overlay.Report)
}

func (c *Config) finalize() error {
	if err := c.finalizeRendering(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Web.Finalize(); err != nil {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

func (c *Config) finalizeRendering() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Render.Finalize(renderEnv); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := c.Report.Finalize(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSpotlightShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSpotlightVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvSpotlightLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	return nil
}

// read loads the base file when it exists and merges the SPOTLIGHT_ENV
// overlay that sits beside it.
func read(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(path); overlay != "" {
		loaded, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(loaded)
	}

	return cfg, nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvSpotlightEnv)
	if env == "" {
		return ""
	}
	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
