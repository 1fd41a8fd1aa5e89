// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers understood by the server.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	Storage    Storage    `yaml:"storage"`
	GRPCServer GRPCServer `yaml:"grpc_server"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Pagination Pagination `yaml:"pagination"`
}

// Storage selects the record store backend.
type Storage struct {
	// Driver is "memory" (default, nothing survives a restart) or "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`

	// Path is the SQLite .db file. Ignored by the memory driver.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"storage/students.db"`
}

// GRPCServer holds settings for the gRPC listener.
type GRPCServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:50051".
	Addr string `yaml:"address" env:"GRPC_SERVER_ADDR" env-required:"true"`

	// MaxRecvMsgSize caps a single request, in bytes.
	MaxRecvMsgSize int `yaml:"max_recv_msg_size" env:"GRPC_MAX_RECV_MSG_SIZE" env-default:"4194304"`
}

// HTTPServer holds settings for the JSON gateway, /metrics and /healthz.
// An empty Addr disables the HTTP listener.
type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR"`
}

// Pagination bounds ListStudents page sizes.
type Pagination struct {
	// DefaultPageSize is used when a request asks for page_size <= 0.
	DefaultPageSize int `yaml:"default_page_size" env:"DEFAULT_PAGE_SIZE" env-default:"10"`

	// MaxPageSize clamps larger requests.
	MaxPageSize int `yaml:"max_page_size" env:"MAX_PAGE_SIZE" env-default:"100"`
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure. If this
// function returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and checks the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Pagination.DefaultPageSize < 1 {
		return fmt.Errorf("pagination.default_page_size must be positive, got %d", c.Pagination.DefaultPageSize)
	}
	if c.Pagination.MaxPageSize < c.Pagination.DefaultPageSize {
		return fmt.Errorf("pagination.max_page_size (%d) is smaller than default_page_size (%d)",
			c.Pagination.MaxPageSize, c.Pagination.DefaultPageSize)
	}

	return nil
}
