package config

import (
	"flag"
	"io"

	"github.com/godiecl/fivet-grpc/internal/flagx"
)

// serverFlags are the flags parseFlags owns; true means the flag takes a value.
var serverFlags = flagx.Set{
	"a": true, "d": true, "i": false, "s": true, "t": true,
	"hasher": true, "log-level": true, "log-format": true,
}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string          gRPC bind address (e.g. ":50051")
//	-d string          database DSN
//	-i                 drop and recreate the schema at startup
//	-s string          token signing secret
//	-t duration        access token validity (e.g. "15m")
//	-hasher string     password hasher, argon2id or bcrypt
//	-log-level string  debug, info, warn or error
//	-log-format string json or text
//
// args is first filtered with flagx.FilterArgs so flags owned by other
// loaders (-c) do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("fivet-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.Initialize, "i", config.Initialize, "drop and recreate the schema (destroys data)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token validity")
	fs.StringVar(&config.PasswordHasher, "hasher", config.PasswordHasher, "password hasher")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format")

	return fs.Parse(flagx.FilterArgs(args, serverFlags))
}
