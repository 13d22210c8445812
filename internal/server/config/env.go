package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded, when present, before the environment is read. Variables
// already set in the process environment win over the file.
var envFile = ".env"

// Environment variables understood by the server.
const (
	EnvGRPCAddr       = "FIVET_GRPC_ADDR"
	EnvDatabaseDSN    = "FIVET_DATABASE_DSN"
	EnvInitialize     = "FIVET_INITIALIZE"
	EnvSecretKey      = "FIVET_SECRET_KEY"
	EnvAccessTokenTTL = "FIVET_ACCESS_TOKEN_TTL"
	EnvPasswordHasher = "FIVET_PASSWORD_HASHER"
	EnvLogLevel       = "FIVET_LOG_LEVEL"
	EnvLogFormat      = "FIVET_LOG_FORMAT"
)

func parseEnv(config *Config) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	setString(&config.EndpointAddrGRPC, os.Getenv(EnvGRPCAddr))
	setString(&config.DatabaseDSN, os.Getenv(EnvDatabaseDSN))
	setString(&config.SecretKey, os.Getenv(EnvSecretKey))
	setString(&config.PasswordHasher, os.Getenv(EnvPasswordHasher))
	setString(&config.LogLevel, os.Getenv(EnvLogLevel))
	setString(&config.LogFormat, os.Getenv(EnvLogFormat))

	if v := os.Getenv(EnvInitialize); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvInitialize, err)
		}
		config.Initialize = b
	}

	if v := os.Getenv(EnvAccessTokenTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAccessTokenTTL, err)
		}
		config.AccessTokenValidityDuration = d
	}

	return nil
}
