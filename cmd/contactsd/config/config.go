package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
)

// BaseConfig holds all configuration for the contacts server.
type BaseConfig struct {
	Server      ServerConfig      `json:"server"`
	Persistence PersistenceConfig `json:"persistence"`
	Features    FeaturesConfig    `json:"features"`
	Paging      PagingConfig      `json:"paging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        string `json:"port" env:"SERVER_PORT" default:"3000"`
	Host        string `json:"host" env:"SERVER_HOST" default:"localhost"`
	MetricsPath string `json:"metrics_path" default:"/metrics"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// PersistenceConfig implements persistence.Config.
type PersistenceConfig struct {
	Debug          bool          `json:"debug" default:"false"`
	Driver         string        `json:"driver" env:"DB_DRIVER" default:"sqlite"`
	Server         string        `json:"server" env:"DB_SERVER" default:"file:contacts.db?cache=shared&_fk=1"`
	PingTimeout    time.Duration `json:"ping_timeout" default:"5s"`
	OtelIdentifier string        `json:"otel_identifier" default:"go-contacts"`
}

func (c PersistenceConfig) GetDebug() bool                { return c.Debug }
func (c PersistenceConfig) GetDriver() string             { return c.Driver }
func (c PersistenceConfig) GetServer() string             { return c.Server }
func (c PersistenceConfig) GetPingTimeout() time.Duration { return c.PingTimeout }
func (c PersistenceConfig) GetOtelIdentifier() string     { return c.OtelIdentifier }

// FeaturesConfig toggles optional behavior.
type FeaturesConfig struct {
	Signup bool `json:"signup" env:"FEATURE_SIGNUP" default:"true"`
}

// PagingConfig bounds page sizes accepted by the API.
type PagingConfig struct {
	DefaultSize int `json:"default_size" default:"10"`
	MaxSize     int `json:"max_size" default:"100"`
}

// Supported persistence drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrUnknownDriver = errors.New("config: unknown persistence driver")
	ErrMissingServer = errors.New("config: persistence server required")
	ErrMissingPort   = errors.New("config: server port required")
	ErrInvalidPaging = errors.New("config: invalid paging bounds")
)

// Defaults returns the configuration used before any source is loaded.
func Defaults() *BaseConfig {
	return &BaseConfig{
		Server: ServerConfig{
			Host:        "localhost",
			Port:        "3000",
			MetricsPath: "/metrics",
		},
		Persistence: PersistenceConfig{
			Driver:         DriverSQLite,
			Server:         "file:contacts.db?cache=shared&_fk=1",
			PingTimeout:    5 * time.Second,
			OtelIdentifier: "go-contacts",
		},
		Features: FeaturesConfig{Signup: true},
		Paging:   PagingConfig{DefaultSize: 10, MaxSize: 100},
	}
}

// GetPersistence returns persistence config.
func (c *BaseConfig) GetPersistence() persistence.Config {
	return c.Persistence
}

// GetServer returns server config.
func (c *BaseConfig) GetServer() ServerConfig {
	return c.Server
}

// DriverName normalizes the configured driver. "postgresql" and "pg" are
// accepted as aliases.
func (c *BaseConfig) DriverName() string {
	switch strings.ToLower(strings.TrimSpace(c.Persistence.Driver)) {
	case "", DriverSQLite, "sqlite3":
		return DriverSQLite
	case DriverPostgres, "postgresql", "pg":
		return DriverPostgres
	default:
		return c.Persistence.Driver
	}
}

// Validate implements config.Validable interface
func (c *BaseConfig) Validate() error {
	switch c.DriverName() {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Persistence.Driver)
	}
	if strings.TrimSpace(c.Persistence.Server) == "" {
		return ErrMissingServer
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return ErrMissingPort
	}
	if c.Paging.DefaultSize <= 0 || c.Paging.MaxSize < c.Paging.DefaultSize {
		return ErrInvalidPaging
	}
	return nil
}
