package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "glyph.log")

	l, closer, err := New("debug", file)
	require.NoError(t, err)
	l.Info().Str("k", "v").Msg("hello")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestNew_Appends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "glyph.log")

	for _, msg := range []string{"first", "second"} {
		l, closer, err := New("info", file)
		require.NoError(t, err)
		l.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestNew_LevelFilters(t *testing.T) {
	file := filepath.Join(t.TempDir(), "glyph.log")

	l, closer, err := New("warn", file)
	require.NoError(t, err)
	l.Info().Msg("quiet")
	l.Warn().Msg("loud")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("chatty", "")
	require.Error(t, err)
	assert.NotNil(t, closer)
}
