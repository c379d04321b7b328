// Package cli implements the verischol command-line client.
//
// Every invocation resolves its configuration (defaults, --config JSON file,
// environment, flags), opens the local session store and dials the server.
// A session saved by "login" is reused by later commands until "logout" or
// until the server rejects the token.
//
// Command groups:
//   - ping, register, login, logout, whoami, passwd
//   - principals, role (administrators)
//   - project create|assign|list|show
//   - record upload|update|show|list|read|verify|attack|delete|audit|retained
//   - report export
package cli
