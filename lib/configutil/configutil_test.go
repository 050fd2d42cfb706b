package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Region string `json:"region"`
	Calls  int    `json:"calls"`
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "app.json5"),
		[]byte(`{region: "us", calls: 60}`),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "app.local.json5"),
		[]byte(`{region: "de"}`),
		0o644,
	))

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "de", cfg.Region)
	require.Equal(t, 60, cfg.Calls)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadOptionalMissingFileYieldsZeroValue(t *testing.T) {
	cfg, err := ReadOptional[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{}, cfg)
}
