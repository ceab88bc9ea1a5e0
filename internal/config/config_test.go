package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, BackendFirestore, cfg.StoreBackend)
	assert.Equal(t, "products", cfg.Collection)
	assert.Equal(t, 2*time.Second, cfg.PollInterval())
}

func TestLoad_EnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("STORE_BACKEND=memory\nSPANNER_POLL_INTERVAL_MS=250\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STORE_BACKEND")
		os.Unsetenv("SPANNER_POLL_INTERVAL_MS")
	})

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval())
}

func TestLoad_ProcessEnvWins(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("ADDRESS=:9000\n"), 0o600))
	t.Setenv("ADDRESS", ":7000")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Address)
}

func TestLoad_Rejects(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("STORE_BACKEND", "redis")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORE_BACKEND", BackendSpanner)
	t.Setenv("SPANNER_POLL_INTERVAL_MS", "0")
	_, err = Load()
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
