package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monkey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ">> ", cfg.Prompt)
	assert.True(t, cfg.Color)
	assert.Zero(t, cfg.MaxDepth)
	assert.Zero(t, cfg.LogLevel)
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
prompt: "monkey> "
color: false
history_file: /tmp/hist
log_level: 2
max_depth: 500
show_tokens: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "monkey> ", cfg.Prompt)
	assert.False(t, cfg.Color)
	assert.Equal(t, "/tmp/hist", cfg.HistoryFile)
	assert.Equal(t, 2, cfg.LogLevel)
	assert.Equal(t, 500, cfg.MaxDepth)
	assert.True(t, cfg.ShowTokens)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeFile(t, "max_depth: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, ">> ", cfg.Prompt)
	assert.True(t, cfg.Color)
	assert.Equal(t, 10, cfg.MaxDepth)
}

func TestLoadMissingAndEmpty(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Prompt, cfg.Prompt)

	cfg, err = Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default().Prompt, cfg.Prompt)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"unknown key", "colour: true\n", "field colour not found"},
		{"bad type", "max_depth: deep\n", "cannot unmarshal"},
		{"negative depth", "max_depth: -1\n", "max_depth must not be negative"},
		{"log level", "log_level: 9\n", "log_level must be between 0 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDiscoverUsesEnvironment(t *testing.T) {
	path := writeFile(t, "prompt: \"env> \"\n")
	t.Setenv(EnvConfigPath, path)

	assert.Equal(t, path, Path())
	cfg, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "env> ", cfg.Prompt)
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.MaxDepth = 42

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))
	assert.Contains(t, buf.String(), "max_depth: 42")

	path := writeFile(t, buf.String())
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
