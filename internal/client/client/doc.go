// Package client talks to the fivet gRPC service.
//
// GRPCClient manages the connection, attaches the access token and a request
// id to outgoing calls through an interceptor, applies a per-call timeout and
// maps gRPC status codes to the sentinel errors in errors.go, so callers can
// match them with errors.Is.
package client
