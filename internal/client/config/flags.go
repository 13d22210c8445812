package config

import (
	"flag"
	"io"

	"github.com/godiecl/fivet-grpc/internal/flagx"
)

// Flags lists the flags the client configuration owns, including -c. The
// CLI uses it to tell its command words apart from flag values.
var Flags = flagx.Set{
	"a": true, "timeout": true, "token": true,
	"c": true, "config": true,
}

// parseFlags supports:
//
//	-a string          server address (e.g. "127.0.0.1:50051")
//	-timeout duration  per-request timeout
//	-token string      access token for protected commands
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("fivet-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "server address")
	fs.DurationVar(&config.RequestTimeout, "timeout", config.RequestTimeout, "request timeout")
	fs.StringVar(&config.AccessToken, "token", config.AccessToken, "access token")

	return fs.Parse(flagx.FilterArgs(args, flagx.Set{"a": true, "timeout": true, "token": true}))
}
