// Package config loads runtime configuration for the VeriSchol CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with --config (see (*Config).LoadJSON).
//  3. Environment: VERISCHOL_SERVER, VERISCHOL_SESSION.
//  4. Command-line flags bound by the cli package.
//
// # JSON schema
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "session_file": "/home/me/.config/verischol/session.db",
//	  "request_timeout": "30s"
//	}
package config
