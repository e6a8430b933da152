// Package config provides configuration management for the EPG icon merge server.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

var (
	// ErrInvalidPort is returned when port number is invalid.
	ErrInvalidPort = errors.New("invalid port number")
	// ErrInvalidLogLevel is returned when log level is invalid.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrFetchTimeoutPositive is returned when fetch timeout is not positive.
	ErrFetchTimeoutPositive = errors.New("fetch timeout must be positive")
)

// Config holds the application configuration. Default playlist and EPG URLs
// live in the Store, not here, because the settings page can change them at
// runtime.
type Config struct {
	EnvFile      string
	Port         int
	LogLevel     string
	LogFile      string
	FetchTimeout time.Duration
}

// New creates a new configuration instance by parsing command-line flags.
func New() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.EnvFile, "env-file", ".env", "Path to the .env file holding default URLs")
	flag.IntVar(&cfg.Port, "port", 5000, "Port to listen on")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFile, "log-file", "", "Log file with rotation (empty logs to stderr)")
	flag.DurationVar(&cfg.FetchTimeout, "fetch-timeout", 30*time.Second, "Timeout for fetching remote documents")

	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}

	if c.FetchTimeout <= 0 {
		return ErrFetchTimeoutPositive
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("%w: %s (must be debug, info, warn, or error)", ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
