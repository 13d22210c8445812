// Package config handles configuration for the server component: defaults,
// an optional JSON file, FIVET_* environment variables (optionally read from
// a .env file) and command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/godiecl/fivet-grpc/internal/server/auth"
)

// Config holds runtime settings for the fivet server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - DatabaseDSN: connection descriptor, PostgreSQL URL/keywords or a SQLite file/URI.
//   - Initialize: drop and recreate the schema at startup. Destroys stored data.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenValidityDuration: access token lifetime.
//   - PasswordHasher: "argon2id" or "bcrypt".
//   - LogLevel / LogFormat: slog level name and "json" or "text".
type Config struct {
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	Initialize                  bool
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	PasswordHasher              string
	LogLevel                    string
	LogFormat                   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "sqlite:fivet.db"
	c.Initialize = false
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.PasswordHasher = auth.HasherArgon2id
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.EndpointAddrGRPC == "" {
		errs = append(errs, errors.New("empty gRPC address"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("empty database DSN"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("empty secret key"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, fmt.Errorf("access token validity must be positive, got %s", c.AccessTokenValidityDuration))
	}
	if _, err := auth.NewPasswordHasher(c.PasswordHasher); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally from the
// command-line arguments args (without the program name).
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
