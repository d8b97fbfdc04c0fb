package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8009", c.ServerURL)
	assert.Equal(t, "127.0.0.1:50051", c.GRPCAddr)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Empty(t, c.SessionFile)
}

func TestSessionPath(t *testing.T) {
	c := Config{SessionFile: "/tmp/s.json"}
	p, err := c.SessionPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/s.json", p)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	c = Config{}
	p, err = c.SessionPath()
	require.NoError(t, err)
	assert.Equal(t, sessionFileName, filepath.Base(p))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(p)))
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_url": "http://json:1",
		"grpc_addr": "json:2",
		"timeout": "3s"
	}`), 0o600))

	t.Setenv("PASSVAULT_CLIENT_GRPC_ADDR", "env:2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://json:1", cfg.ServerURL, "json over default")
	assert.Equal(t, "env:2", cfg.GRPCAddr, "env over json")
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)

	t.Setenv("PASSVAULT_CLIENT_TIMEOUT", "later")
	_, err = Load("")
	require.Error(t, err)
}
