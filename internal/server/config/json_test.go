package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_grpc":             "www.example:9000",
		"database_dsn":                   "postgres://u:p@db:5432/fivet",
		"initialize":                     true,
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "1m",
		"password_hasher":                "bcrypt",
		"log_level":                      "warn",
		"log_format":                     "text",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, &Config{
			EndpointAddrGRPC:            "www.example:9000",
			DatabaseDSN:                 "postgres://u:p@db:5432/fivet",
			Initialize:                  true,
			SecretKey:                   "my_secret_key",
			AccessTokenValidityDuration: time.Minute,
			PasswordHasher:              "bcrypt",
			LogLevel:                    "warn",
			LogFormat:                   "text",
		}, cfg)
	})

	t.Run("absent fields keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "debug"})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-c=" + partial}))

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
		assert.False(t, cfg.Initialize)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		cfg := &Config{SecretKey: "key"}
		require.NoError(t, parseJson(cfg, []string{"-a", ":1"}))
		assert.Equal(t, &Config{SecretKey: "key"}, cfg)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJson(&Config{}, []string{"-config", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		err := parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")})
		assert.ErrorContains(t, err, "read config file")
	})
}
