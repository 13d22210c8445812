// Package config handles configuration for the CLI client.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds settings for the fivet CLI.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	AccessToken        string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.AccessToken = ""
}

func (c *Config) Validate() error {
	var errs []error
	if c.ServerEndpointAddr == "" {
		errs = append(errs, errors.New("empty server address"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	return errors.Join(errs...)
}

// LoadConfig applies defaults, the JSON file named by -c, the environment
// and the command-line flags in args, in that order.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
