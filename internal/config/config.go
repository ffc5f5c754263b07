// Package config loads the game's YAML configuration file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/tenebrae/internal/antispam"
	"github.com/lawnchairsociety/tenebrae/internal/database"
)

// Config is the top-level configuration.
type Config struct {
	Display DisplayConfig   `yaml:"display"`
	Content ContentConfig   `yaml:"content"`
	Records database.Config `yaml:"records"`
	Server  ServerConfig    `yaml:"server"`
}

// DisplayConfig controls how narrative text is rendered.
type DisplayConfig struct {
	// Width is the wrap column for narrative text. 0 disables wrapping.
	Width int `yaml:"width"`

	// Color enables ANSI styling of banners and endings.
	Color bool `yaml:"color"`
}

// ContentConfig selects the game data.
type ContentConfig struct {
	// Dir replaces the embedded content when set.
	Dir string `yaml:"dir"`
}

// ServerConfig holds settings for the network front end.
type ServerConfig struct {
	// TelnetAddr is the TCP listen address. Empty disables telnet.
	TelnetAddr string `yaml:"telnet_addr"`

	// WebSocketAddr is the HTTP listen address for /ws. Empty disables it.
	WebSocketAddr string `yaml:"websocket_addr"`

	WebSocket   WebSocketConfig   `yaml:"websocket"`
	Connections ConnectionsConfig `yaml:"connections"`

	// Flood limits how fast one connection may send commands.
	Flood antispam.Config `yaml:"flood"`
}

// ConnectionsConfig holds connection limit settings.
type ConnectionsConfig struct {
	// MaxPerIP is the maximum concurrent connections from one IP address.
	// 0 means unlimited.
	MaxPerIP int `yaml:"max_per_ip"`

	// MaxTotal is the maximum total concurrent connections. 0 means unlimited.
	MaxTotal int `yaml:"max_total"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins lists origins allowed to connect. Empty enforces
	// same-origin; "*" allows everything.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width: 80,
			Color: true,
		},
		Records: database.DefaultConfig("data/tenebrae.db"),
		Server: ServerConfig{
			TelnetAddr:    ":4000",
			WebSocketAddr: ":4443",
			WebSocket: WebSocketConfig{
				AllowedOrigins: []string{},
				MaxMessageSize: 4096,
			},
			Connections: ConnectionsConfig{
				MaxPerIP: 3,
				MaxTotal: 100,
			},
			Flood: antispam.DefaultConfig(),
		},
	}
}

// LoadConfig loads configuration from a YAML file over the defaults.
// A missing file is not an error. Environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Display.Width < 0 {
		return fmt.Errorf("display.width must not be negative")
	}
	switch database.DialectType(c.Records.Driver) {
	case database.DialectSQLite, database.DialectPostgres:
	default:
		return fmt.Errorf("records.driver %q must be sqlite or postgres", c.Records.Driver)
	}
	if c.Server.Connections.MaxPerIP < 0 || c.Server.Connections.MaxTotal < 0 {
		return fmt.Errorf("server.connections limits must not be negative")
	}
	if err := c.Server.Flood.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// applyEnv lets deployment secrets stay out of the YAML file.
func (c *Config) applyEnv() error {
	if v := os.Getenv("TENEBRAE_CONTENT_DIR"); v != "" {
		c.Content.Dir = v
	}
	if v := os.Getenv("TENEBRAE_RECORDS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TENEBRAE_RECORDS_ENABLED: %w", err)
		}
		c.Records.Enabled = enabled
	}
	if v := os.Getenv("TENEBRAE_DB_DRIVER"); v != "" {
		c.Records.Driver = v
	}
	if v := os.Getenv("TENEBRAE_DB_PATH"); v != "" {
		c.Records.SQLitePath = v
	}
	if v := os.Getenv("TENEBRAE_DB_HOST"); v != "" {
		c.Records.Postgres.Host = v
	}
	if v := os.Getenv("TENEBRAE_DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TENEBRAE_DB_PORT: %w", err)
		}
		c.Records.Postgres.Port = port
	}
	if v := os.Getenv("TENEBRAE_DB_USER"); v != "" {
		c.Records.Postgres.User = v
	}
	if v := os.Getenv("TENEBRAE_DB_PASSWORD"); v != "" {
		c.Records.Postgres.Password = v
	}
	if v := os.Getenv("TENEBRAE_DB_NAME"); v != "" {
		c.Records.Postgres.Database = v
	}
	return nil
}

// IsOriginAllowed reports whether a WebSocket handshake from origin may
// proceed for a request addressed to requestHost.
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// isSameOrigin treats a missing Origin header as a non-browser client.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, requestHost)
}
