package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Templates = map[string]Template{
		"daily": {Description: "Daily log", Sections: []TemplateSection{{Title: "Today"}}},
	}

	assert.NoError(t, cfg.ValidateDeep(""))
	assert.Empty(t, cfg.Warnings())
}

func TestValidateDeep_UnknownNames(t *testing.T) {
	cfg := validConfig(t)
	cfg.Theme = "neon"
	cfg.Markdown.Style = "fancy"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "theme", fieldErrs[0].Field)
	assert.Equal(t, "markdown.style", fieldErrs[1].Field)
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "not a directory")
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidateDeep_EmptyTemplateSection(t *testing.T) {
	cfg := validConfig(t)
	cfg.Templates = map[string]Template{
		"blank": {Sections: []TemplateSection{{Title: "ok"}, {}}},
	}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, "sections[1]")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	cfg.Markdown.CacheSize = 0
	cfg.Templates = map[string]Template{
		"b": {Sections: []TemplateSection{{Title: "x"}}},
		"a": {Sections: []TemplateSection{{Title: "x"}}},
	}

	warnings := cfg.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, "Markdown", warnings[0].Category)
	assert.Equal(t, "a", warnings[1].Item)
	assert.Equal(t, "b", warnings[2].Item)
}

func TestValidateDeep_TemplateSyntax(t *testing.T) {
	cfg := validConfig(t)
	cfg.Templates = map[string]Template{
		"daily": {Sections: []TemplateSection{{Title: "{{ .Date }}", Content: "{{ if }}"}}},
	}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, "sections[0]")
	assert.ErrorContains(t, fieldErrs[0].Err, "parse template")
}
