package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the VeriSchol CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - SessionFile: SQLite file that keeps the session token between runs.
//   - RequestTimeout: deadline applied to every call to the server.
//
// Sources, lowest precedence first: defaults, JSON file (--config),
// environment (VERISCHOL_SERVER, VERISCHOL_SESSION), command-line flags.
type Config struct {
	ServerEndpointAddr string
	SessionFile        string
	RequestTimeout     time.Duration
}

const (
	EnvServer  = "VERISCHOL_SERVER"
	EnvSession = "VERISCHOL_SESSION"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionFile = defaultSessionFile()
	c.RequestTimeout = 30 * time.Second
}

// ApplyEnv overlays values found through lookup, normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvServer); ok && v != "" {
		c.ServerEndpointAddr = v
	}
	if v, ok := lookup(EnvSession); ok && v != "" {
		c.SessionFile = v
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "verischol-session.db"
	}
	return filepath.Join(dir, "verischol", "session.db")
}
