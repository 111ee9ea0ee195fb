package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "SPOTLIGHT_SERVER_HOST"
	EnvServerPort              = "SPOTLIGHT_SERVER_PORT"
	EnvServerReadTimeout       = "SPOTLIGHT_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "SPOTLIGHT_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "SPOTLIGHT_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "SPOTLIGHT_SERVER_IDLE_TIMEOUT"
)

// ServerConfig holds HTTP server parameters. Timeouts are Go duration strings.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return duration(c.ReadTimeout)
}

// ReadHeaderTimeoutDuration returns ReadHeaderTimeout as a time.Duration.
func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	return duration(c.ReadHeaderTimeout)
}

// WriteTimeoutDuration returns WriteTimeout as a time.Duration.
func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return duration(c.WriteTimeout)
}

// IdleTimeoutDuration returns IdleTimeout as a time.Duration.
func (c *ServerConfig) IdleTimeoutDuration() time.Duration {
	return duration(c.IdleTimeout)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for _, f := range c.timeouts(overlay) {
		if *f.overlay != "" {
			*f.base = *f.overlay
		}
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "30s"
	}
	if c.ReadHeaderTimeout == "" {
		c.ReadHeaderTimeout = "10s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "2m"
	}
	if c.IdleTimeout == "" {
		c.IdleTimeout = "2m"
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	for _, f := range c.timeouts(nil) {
		if v := os.Getenv(f.env); v != "" {
			*f.base = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for _, f := range c.timeouts(nil) {
		if _, err := time.ParseDuration(*f.base); err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
	}
	return nil
}

type timeoutField struct {
	name    string
	env     string
	base    *string
	overlay *string
}

func (c *ServerConfig) timeouts(overlay *ServerConfig) []timeoutField {
	if overlay == nil {
		overlay = &ServerConfig{}
	}
	return []timeoutField{
		{"read_timeout", EnvServerReadTimeout, &c.ReadTimeout, &overlay.ReadTimeout},
		{"read_header_timeout", EnvServerReadHeaderTimeout, &c.ReadHeaderTimeout, &overlay.ReadHeaderTimeout},
		{"write_timeout", EnvServerWriteTimeout, &c.WriteTimeout, &overlay.WriteTimeout},
		{"idle_timeout", EnvServerIdleTimeout, &c.IdleTimeout, &overlay.IdleTimeout},
	}
}

func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
