// Package config provides centralized configuration management for the census
// services. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/JonMunkholm/census/internal/core"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Census   CensusConfig
	Input    InputConfig
	Export   ExportConfig
	Cache    CacheConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// CensusConfig holds the default source files used by the CLI and the
// load-default endpoint.
type CensusConfig struct {
	// IndiaPath is the India census CSV
	IndiaPath string `env:"CENSUS_INDIA_PATH" default:"data/IndiaStateCensusData.csv"`

	// IndiaStateCodePath is the India state-code CSV; empty disables enrichment
	IndiaStateCodePath string `env:"CENSUS_INDIA_STATE_CODE_PATH" default:"data/IndiaStateCode.csv"`

	// USPath is the US census CSV
	USPath string `env:"CENSUS_US_PATH" envAlt:"US_CENSUS_PATH" default:"data/USCensusData.csv"`
}

// InputConfig holds settings for reading census sources.
type InputConfig struct {
	// Encoding is the source text encoding: utf-8, latin1, windows-1252 (default: utf-8)
	Encoding string `env:"INPUT_ENCODING" default:"utf-8"`

	// MaxFileSize is the maximum accepted upload size in bytes (default: 32MB)
	MaxFileSize int64 `env:"INPUT_MAX_FILE_SIZE" default:"33554432"`

	// RequireCSVExt rejects paths without a .csv extension (default: true)
	RequireCSVExt bool `env:"INPUT_REQUIRE_CSV_EXT" default:"true"`

	// MaxConcurrent is the maximum number of parallel loads (default: 4)
	MaxConcurrent int `env:"INPUT_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long a load waits for a free slot (default: 10s)
	MaxWaitTime time.Duration `env:"INPUT_MAX_WAIT_TIME" default:"10s"`
}

// ExportConfig holds settings for persisted views.
type ExportConfig struct {
	// Dir is where view exports are written (default: exports)
	Dir string `env:"EXPORT_DIR" envAlt:"OUTPUT_DIR" default:"exports"`

	// Pretty indents exported files (default: true)
	Pretty bool `env:"EXPORT_PRETTY" default:"true"`
}

// CacheConfig holds settings for the rendered-ordering cache.
type CacheConfig struct {
	// TTL is how long a rendered ordering stays cached (default: 10m)
	TTL time.Duration `env:"CACHE_TTL" default:"10m"`

	// CleanupInterval is how often expired renders are purged (default: 15m)
	CleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" default:"15m"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs or IPs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey guards load, export and compare routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted X-API-Key values
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AnalyserOptions maps the input, export and cache sections to core options.
func (c *Config) AnalyserOptions() core.Options {
	return core.Options{
		Encoding:      c.Input.Encoding,
		RequireCSVExt: c.Input.RequireCSVExt,
		ExportDir:     c.Export.Dir,
		Pretty:        c.Export.Pretty,
		CacheTTL:      c.Cache.TTL,
		CacheCleanup:  c.Cache.CleanupInterval,
	}
}
