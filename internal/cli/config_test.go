package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.NoVersionHeader)
	assert.Empty(t, cfg.MappingsFor("reasonml"))
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "wiretype.yaml")

	content := `
type_mappings:
  reasonml:
    Uuid: string
    datetime: string
  typescript:
    Uuid: string
no_version_header: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.NoVersionHeader)
	assert.Equal(t, "string", cfg.MappingsFor("reasonml")["Uuid"])
	assert.Equal(t, "string", cfg.MappingsFor("reasonml")["datetime"])
	assert.Equal(t, "string", cfg.MappingsFor("typescript")["Uuid"])
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/wiretype.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadConfig_Malformed(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type_mappings: [not a map"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestMappingsForNeverNil(t *testing.T) {
	cfg := &Config{}
	m := cfg.MappingsFor("unknown")
	require.NotNil(t, m)
	assert.Empty(t, m)
}
