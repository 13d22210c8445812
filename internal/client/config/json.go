package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/godiecl/fivet-grpc/internal/flagx"
	"github.com/godiecl/fivet-grpc/internal/timex"
)

type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	AccessToken        string         `json:"access_token"`
}

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

	setString(&config.ServerEndpointAddr, c.ServerEndpointAddr)
	setString(&config.AccessToken, c.AccessToken)
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
