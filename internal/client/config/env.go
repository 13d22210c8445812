package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var envFile = ".env"

const (
	EnvServerAddr     = "FIVET_SERVER_ADDR"
	EnvToken          = "FIVET_TOKEN"
	EnvRequestTimeout = "FIVET_REQUEST_TIMEOUT"
)

func parseEnv(config *Config) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	setString(&config.ServerEndpointAddr, os.Getenv(EnvServerAddr))
	setString(&config.AccessToken, os.Getenv(EnvToken))

	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		config.RequestTimeout = d
	}
	return nil
}
