package hierarchy

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml", ".yml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "spec"+ext)
			want := snacksSpec()

			require.NoError(t, Save(want, path))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeTOML(t *testing.T) {
	src := `
root = "Food"
edges = [
  { parent = "Chips", child = "Potato Chips" },
]

[[categories.Food]]
name = "Snacks"
children = ["Chips"]
`
	spec, err := Decode(strings.NewReader(src), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "Food", spec.Root)
	assert.Equal(t, []Group{{Name: "Snacks", Children: []string{"Chips"}}}, spec.Categories["Food"])
	assert.Equal(t, []Pair{{Parent: "Chips", Child: "Potato Chips"}}, spec.Edges)
}

func TestDecodeYAML(t *testing.T) {
	src := `
root: Food
categories:
  Food:
    - name: Snacks
      children: [Chips]
edges:
  - {parent: Chips, child: Tortilla Chips}
`
	spec, err := Decode(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "Food", spec.Root)
	assert.Equal(t, "Snacks", spec.Categories["Food"][0].Name)
	assert.Equal(t, "Tortilla Chips", spec.Edges[0].Child)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"root": "Food", "bogus": 1}`), FormatJSON)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidFormat))

	_, err = Decode(strings.NewReader(`root = `), FormatTOML)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidFormat))

	_, err = Decode(strings.NewReader(``), "xml")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidFormat))
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		format, doc string
	}{
		{FormatTOML, "root = \"Food\"\n\n[[edge]]\nparent = \"Food\"\nchild = \"Snacks\"\n"},
		{FormatTOML, "root = \"Food\"\n\n[[categoriez.Food]]\nname = \"Snacks\"\n"},
		{FormatTOML, "root = \"Food\"\n\n[[edges]]\nparent = \"Food\"\nkid = \"Snacks\"\n"},
		{FormatYAML, "root: Food\nedge:\n  - parent: Food\n    child: Snacks\n"},
		{FormatYAML, "root: Food\ncategories:\n  Food:\n    - name: Snacks\n      kids: [Chips]\n"},
		{FormatJSON, `{"root": "Food", "edge": [{"parent": "Food", "child": "Snacks"}]}`},
	}
	for _, tt := range tests {
		_, err := Decode(strings.NewReader(tt.doc), tt.format)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidFormat), "%s: %q gave %v", tt.format, tt.doc, err)
	}
}

func TestDecodeKnownKeysStillBuild(t *testing.T) {
	docs := map[string]string{
		FormatTOML: "root = \"Food\"\n\n[[edges]]\nparent = \"Food\"\nchild = \"Snacks\"\n",
		FormatYAML: "root: Food\nedges:\n  - parent: Food\n    child: Snacks\n",
	}
	for format, doc := range docs {
		spec, err := Decode(strings.NewReader(doc), format)
		require.NoError(t, err, format)
		tr, err := Build(context.Background(), spec)
		require.NoError(t, err, format)
		assert.Equal(t, 2, tr.NodeCount(), format)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeFileNotFound))

	path := filepath.Join(t.TempDir(), "spec.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b"), 0o644))
	_, err = Load(path)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidFormat))
}

func TestEncodeTOMLReadable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snacksSpec(), FormatTOML))
	assert.Contains(t, buf.String(), `root = "Food"`)
	assert.Contains(t, buf.String(), `Potato Chips`)
}
