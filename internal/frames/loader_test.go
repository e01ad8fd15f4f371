package frames

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames")
	doc := `[
		[1700000000, 1700028800, "proj", "id1", ["tag1"], null],
		[1700000000, 1700028800, "proj", "id2", []]
	]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Len(t, entries[0], 6)
	assert.Len(t, entries[1], 5)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"object", `{"frames": []}`},
		{"null document", `null`},
		{"number document", `42`},
		{"truncated", `[[1, 2`},
		{"entry is not an array", `[[1, 2, "p", "a", [], null], 5]`},
		{"entry is null", `[null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidLog)
		})
	}
}

func TestParseEmptyArray(t *testing.T) {
	entries, err := Parse([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
