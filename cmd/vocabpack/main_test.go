package main

import (
	"os"
	"path/filepath"
	"testing"

	"wordballs/internal/repository/file"
	"wordballs/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"words": [
		{"text": "cat", "lang": "en", "image": "cat.png"},
		{"text": "", "lang": "en"},
		{"text": "kedi", "lang": "tr"}
	]}`), 0o644))

	tests := []struct {
		name     string
		lang     string
		expected []string
	}{
		{name: "all languages", expected: []string{"CAT", "KEDI"}},
		{name: "one language", lang: "tr", expected: []string{"KEDI"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".msgpack")

			require.NoError(t, pack(in, out, tt.lang, testutil.NewTestLogger()))

			repo, err := file.Open(out)
			require.NoError(t, err)
			var texts []string
			for _, e := range repo.All() {
				texts = append(texts, e.Text)
			}
			assert.Equal(t, tt.expected, texts)
		})
	}
}

func TestPack_MissingInput(t *testing.T) {
	err := pack(filepath.Join(t.TempDir(), "missing.json"), "out.msgpack", "", testutil.NewTestLogger())
	assert.Error(t, err)
}
