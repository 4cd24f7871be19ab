// Package config loads the settings shared by the insights CLI and MCP server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is prepended to every variable, e.g. INSIGHTS_BASE_URL.
const Prefix = "INSIGHTS"

// Config groups all tunables. Values are taken from environment variables
// with the prefix "INSIGHTS_". Example: INSIGHTS_BASE_URL=https://insights.example.com/api/v0 .
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL"     default:"http://localhost:8100/api/v0"`
	APIKey      string        `envconfig:"API_KEY"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	LogLevel    string        `envconfig:"LOG_LEVEL"    default:"info"`
	Debug       bool          `envconfig:"DEBUG"        default:"false"`
	RequestIDs  bool          `envconfig:"REQUEST_IDS"  default:"false"`

	// MCP server only
	MCPAddr         string        `envconfig:"MCP_ADDR"          default:":8765"`
	MCPTransport    string        `envconfig:"MCP_TRANSPORT"     default:"auto"`
	ServerName      string        `envconfig:"MCP_SERVER_NAME"   default:"insights-mcp-server"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT"  default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
}

// Load populates Config from environment variables (prefix INSIGHTS_) and
// validates it.
func Load() (*Config, error) {
	c, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromEnv populates Config from the environment without validating it, for
// callers that apply overrides before calling Validate.
func FromEnv() (*Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the values envconfig cannot express as tags.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%s_BASE_URL must not be empty", Prefix)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%s_HTTP_TIMEOUT must be > 0, got %s", Prefix, c.HTTPTimeout)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.MCPTransport {
	case "auto", "stdio", "http":
	default:
		return fmt.Errorf("%s_MCP_TRANSPORT must be auto, stdio or http, got %q", Prefix, c.MCPTransport)
	}
	return nil
}

// Level returns the parsed log level; Validate has already vetted it.
func (c *Config) Level() zerolog.Level {
	lvl, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// ParseLogLevel accepts debug, info, warn and error in any case.
func ParseLogLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("%s_LOG_LEVEL: unknown level %q", Prefix, s)
	}
}
