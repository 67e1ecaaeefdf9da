package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  node_id: node-1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "node-1", cfg.Server.NodeID)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 7946, cfg.Server.BindPort)
	assert.Equal(t, 200*time.Millisecond, cfg.Gossip.GossipInterval)
	assert.Equal(t, uint64(15_000), cfg.Table.InsertTimeoutMs)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadPreservesExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `
server:
  node_id: node-2
  bind_port: 9999
gossip:
  seed_nodes:
    - 10.0.0.1:7946
    - 10.0.0.2:7946
metrics:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.BindPort)
	assert.Equal(t, []string{"10.0.0.1:7946", "10.0.0.2:7946"}, cfg.Gossip.SeedNodes)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsMissingNodeID(t *testing.T) {
	path := writeConfigFile(t, `
server:
  bind_port: 7946
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "node_id")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}
