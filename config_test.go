package dawg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "dawg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 240007, cfg.HashTableSize)
	require.Equal(t, 240006, cfg.MaxEdges)
	require.Equal(t, 256, cfg.MaxLine)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "max_edges: 1000\nhash_table_size: 1201\nencoding: ISO-8859-3\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 1000, cfg.MaxEdges)
	require.Equal(t, 1201, cfg.HashTableSize)
	require.Equal(t, "ISO-8859-3", cfg.Encoding)

	// untouched fields keep their defaults
	require.Equal(t, DefaultMaxLine, cfg.MaxLine)
	require.Equal(t, DefaultProgressInterval, cfg.ProgressInterval)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigUnknownField(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "max_edgez: 1000\n"))
	require.ErrorIs(t, err, ErrBadConfig)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*Config)
	}{
		{"root does not fit", func(c *Config) { c.MaxEdges = RootSlots }},
		{"pointer overflow", func(c *Config) { c.MaxEdges = PointerMask + 2 }},
		{"no hash table", func(c *Config) { c.HashTableSize = 0 }},
		{"short lines", func(c *Config) { c.MaxLine = 2 }},
		{"negative progress", func(c *Config) { c.ProgressInterval = -1 }},
		{"unknown encoding", func(c *Config) { c.Encoding = "klingon" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrBadConfig)
		})
	}

	cfg := DefaultConfig()
	cfg.MaxEdges = PointerMask + 1
	require.NoError(t, cfg.Validate())
}
