// Package sessions persists the CLI's signed-in sessions, one per server
// endpoint, in the local SQLite database.
package sessions
