package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
	assert.Equal(t, 28, cfg.UI.OutlineWidth)
	assert.Equal(t, "notty", cfg.Markdown.Style)
	assert.NotNil(t, cfg.Templates)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.UI.ScrollStep)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
theme: gruvbox
markdown:
  style: ascii
ui:
  outline_width: 40
templates:
  meeting:
    description: Meeting notes
    layout: sidebar
    sections:
      - title: Agenda
      - title: Notes
      - title: Actions
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, "ascii", cfg.Markdown.Style)
	assert.Equal(t, 64, cfg.Markdown.CacheSize, "unset fields keep defaults")
	assert.Equal(t, 40, cfg.UI.OutlineWidth)
	require.Contains(t, cfg.Templates, "meeting")
	assert.Len(t, cfg.Templates["meeting"].Sections, 3)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "bad yaml", body: "theme: [", wantErr: "parse config file"},
		{name: "narrow outline", body: "ui:\n  outline_width: 3", wantErr: "outline_width"},
		{name: "negative cache", body: "markdown:\n  cache_size: -1", wantErr: "cache_size"},
		{name: "idle above open", body: "database:\n  max_open_conns: 1\n  max_idle_conns: 4", wantErr: "max_idle_conns"},
		{name: "template without sections", body: "templates:\n  empty: {}", wantErr: "at least one section"},
		{name: "template with unknown preset", body: "templates:\n  x:\n    layout: spiral\n    sections: [{title: a}]", wantErr: "unknown layout preset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RequiresDataDir(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory")
}
