package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/godiecl/fivet-grpc/internal/flagx"
	"github.com/godiecl/fivet-grpc/internal/timex"
)

// JsonConfig is the on-disk shape of a configuration file. Absent fields
// leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	Initialize                  *bool          `json:"initialize"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	PasswordHasher              string         `json:"password_hasher"`
	LogLevel                    string         `json:"log_level"`
	LogFormat                   string         `json:"log_format"`
}

// parseJson loads the file named by -c or -config, if any, into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.PasswordHasher, c.PasswordHasher)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	if c.Initialize != nil {
		config.Initialize = *c.Initialize
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
