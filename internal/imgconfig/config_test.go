package imgconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.Equal(t, 1<<20, cfg.PackCopyBufferBytes)
	require.True(t, cfg.PreflightDiskCheck)
	require.Equal(t, "ver2", cfg.DefaultCreateVersion)
}

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"preflight_disk_check": false}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.PreflightDiskCheck)
	require.Equal(t, 1<<20, cfg.PackCopyBufferBytes)
	require.Equal(t, "ver2", cfg.DefaultCreateVersion)
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default_create_version": "ver9"}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
