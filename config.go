package graphstore

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains configuration fields common to all backends. Fields that
// do not apply to a backend are ignored by its adapter.
type Config struct {
	// Basic connection info
	Type     string `yaml:"type"` // backend type (neo4j, postgres, mysql, sqlite, memory)
	URI      string `yaml:"uri"`  // full connection URI, used by URI-based backends (neo4j)
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	FilePath string `yaml:"file_path"` // file-based backends (sqlite)

	// Connection pooling
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`

	// Timeouts
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	QueryTimeout   time.Duration `yaml:"query_timeout"`

	// SSL configuration for backends that support it
	SSLMode string `yaml:"ssl_mode"`

	// Backend-specific options
	Options map[string]string `yaml:"options"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            0, // Backend-specific default
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 10 * time.Minute,
		ConnectTimeout:  30 * time.Second,
		QueryTimeout:    30 * time.Second,
		SSLMode:         "disable",
		Options:         make(map[string]string),
	}
}

// LoadConfig reads a YAML configuration file and merges it over the
// defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Type == "" {
		return NewConfigErrorForField("type", c.Type, "backend type is required")
	}

	switch c.Type {
	case "sqlite", "sqlite3":
		// FilePath "" falls back to an in-memory database.
	case "memory":
		// No connection info needed.
	case "neo4j":
		if c.URI == "" && c.Host == "" {
			return NewConfigErrorForField("uri", c.URI, "neo4j requires a uri or host")
		}
	case "postgres", "postgresql", "mysql":
		if c.Database == "" {
			return NewConfigErrorForField("database", c.Database, "database name is required")
		}
	default:
		return NewConfigErrorForField("type", c.Type, "unknown backend type")
	}

	if c.MaxIdleConns > c.MaxOpenConns && c.MaxOpenConns > 0 {
		return NewConfigErrorForField("max_idle_conns", c.MaxIdleConns,
			"cannot exceed max_open_conns")
	}

	return nil
}

// Address returns the host:port target, or the URI for URI-based backends.
func (c *Config) Address() string {
	if c.URI != "" {
		return c.URI
	}
	if c.Port > 0 {
		return fmt.Sprintf("%s:%d", c.Host, c.Port)
	}
	return c.Host
}
