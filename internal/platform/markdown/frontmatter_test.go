package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type meta struct {
	Start string   `yaml:"start"`
	Moves int      `yaml:"moves"`
	Path  []string `yaml:"path"`
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()
	in := meta{Start: "Alan Turing", Moves: 2, Path: []string{"Alan Turing", "Enigma", "Machine Learning"}}
	content, err := Encode(in, "# Run\n")
	require.NoError(t, err)
	require.Contains(t, content, "---\nstart: Alan Turing\n")

	var out meta
	body, err := Decode(content, &out)
	require.NoError(t, err)
	require.Equal(t, in, out)
	require.Equal(t, "\n# Run\n", body)
}

func TestDecodeWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	var out meta
	body, err := Decode("plain body", &out)
	require.NoError(t, err)
	require.Equal(t, "plain body", body)
	require.Equal(t, meta{}, out)
}

func TestDecodeUnterminated(t *testing.T) {
	t.Parallel()
	var out meta
	_, err := Decode("---\nstart: x\n", &out)
	require.Error(t, err)
}
