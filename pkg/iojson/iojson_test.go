package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]any{"ch": make(chan int)})
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "error marshaling in iojson.Write")
}

func TestMarshalError(t *testing.T) {
	got := MarshalError(`bad "input"`, map[string]any{"field": "name"})
	assert.Contains(t, got, `"message": "bad \"input\""`)
	assert.Contains(t, got, `"field": "name"`)
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x"}`), 0o644))

	fr := &FileReader{fileFlagValue: path}
	got, err := Read[struct{ Name string }](fr)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
}

func TestFileReader_Stdin(t *testing.T) {
	fr := &FileReader{stdin: strings.NewReader(`[1,2,3]`)}

	got, err := Read[[]int](fr)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestFileReader_Errors(t *testing.T) {
	_, err := (&FileReader{fileFlagValue: filepath.Join(t.TempDir(), "missing")}).ReadBytes()
	require.ErrorContains(t, err, "open file")

	_, err = Read[map[string]any](&FileReader{stdin: strings.NewReader("{")})
	require.ErrorContains(t, err, "decode JSON")
}

func TestWriteLine(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteLine(&out, struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{ID: 1, Name: "a"}))
	require.NoError(t, WriteLine(&out, []int{2}))
	assert.Equal(t, "{\"id\":1,\"name\":\"a\"}\n[2]\n", out.String())

	assert.Error(t, WriteLine(&out, func() {}))
}
