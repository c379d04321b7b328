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

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadJSON_Overlay(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_endpoint_addr": "www.example:9000",
		"request_timeout":      "5s",
	})

	c := Config{ServerEndpointAddr: "x", SessionFile: "keep.db", RequestTimeout: time.Minute}
	require.NoError(t, c.LoadJSON(path))

	assert.Equal(t, "www.example:9000", c.ServerEndpointAddr)
	assert.Equal(t, "keep.db", c.SessionFile)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
}

func TestLoadJSON_Errors(t *testing.T) {
	var c Config
	require.Error(t, c.LoadJSON(filepath.Join(t.TempDir(), "missing.json")))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	require.Error(t, c.LoadJSON(bad))
}
