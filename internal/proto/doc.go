// Package proto defines the fivet.FivetService wire contract described in
// fivet.proto: request and response messages, the service descriptor used
// to register a server, and a typed client. Messages are encoded in the
// protobuf binary format by a codec registered under the default "proto"
// content subtype.
package proto
