// Package client is the CLI's connection to the VeriSchol server.
//
// GRPCClient dials the server with the JSON codec, injects the session token
// into every call through a unary interceptor, and maps gRPC status codes back
// onto the sentinel errors of internal/common so callers can match them with
// errors.Is. Transport trouble is reported as ErrUnavailable and throttling
// as ErrRateLimited.
package client
