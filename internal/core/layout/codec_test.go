package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCodec_RoundTrip(t *testing.T) {
	root := New("root").Horizontal().Framed(BorderDashed).With(
		Leaf("outline", 0).Sized(Length(24)),
		New("body").With(Leaf("top", 1), Leaf("bottom", 2).Sized(Flex(2))),
	)

	data, err := Encode(root)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestDecode_Defaults(t *testing.T) {
	got, err := Decode([]byte(`{"label":"root","children":[{"label":"a","content_index":0}]}`))
	require.NoError(t, err)

	assert.Equal(t, Vertical, got.Orientation)
	assert.Equal(t, BorderNone, got.Border)
	assert.Equal(t, Flex(1), got.Size)
	assert.Equal(t, Flex(1), got.Children[0].Size)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ``},
		{name: "not json", data: `{"label":`},
		{name: "unknown orientation", data: `{"orientation":"diagonal"}`},
		{name: "zero flex weight", data: `{"size":{"mode":"flex","value":0}}`},
		{name: "negative content", data: `{"content_index":-1}`},
		{name: "null child", data: `{"children":[null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestEncode_RejectsInvalid(t *testing.T) {
	_, err := Encode(New("x").Sized(Length(-2)))
	require.ErrorIs(t, err, ErrInvalidNode)

	_, err = Encode(nil)
	require.Error(t, err)
}

func TestValidate_LengthCap(t *testing.T) {
	require.NoError(t, New("x").Sized(Length(MaxLength)).Validate())

	for _, cells := range []int{MaxLength + 1, 1 << 40} {
		err := New("root").With(Leaf("tall", 0).Sized(Length(cells))).Validate()
		require.ErrorIs(t, err, ErrInvalidNode)
		assert.Contains(t, err.Error(), "at most")
	}

	_, err := Decode([]byte(`{"label":"x","size":{"mode":"length","value":1099511627776}}`))
	require.ErrorIs(t, err, ErrInvalidNode)
}

func TestYAMLTags(t *testing.T) {
	out, err := yaml.Marshal(Default())
	require.NoError(t, err)
	assert.Contains(t, string(out), "content_index: 0")
	assert.Contains(t, string(out), "border: rounded")
}
