package dictionary

import (
	"testing"

	"wordballs/internal/domain"

	"github.com/stretchr/testify/assert"
)

func entry(text, lang, category string) domain.WordEntry {
	return domain.WordEntry{Text: text, Language: lang, Category: category, AssetRef: "img/" + text}
}

func texts(d *Dictionary) []string {
	var out []string
	for _, e := range d.Entries() {
		out = append(out, e.Text)
	}
	return out
}

func TestLoad(t *testing.T) {
	all := []domain.WordEntry{
		entry("CAT", "en", "animals"),
		entry("KEDI", "tr", "animals"),
		entry("APPLE", "en", "food"),
		entry("DOG", "en", ""),
		entry("CAT", "en", "pets"),
		entry("", "en", "food"),
	}

	tests := []struct {
		name       string
		language   string
		categories []string
		expected   []string
	}{
		{
			name:     "language only keeps source order and duplicates",
			language: "en",
			expected: []string{"CAT", "APPLE", "DOG", "CAT"},
		},
		{
			name:       "category filter",
			language:   "en",
			categories: []string{"food", "pets"},
			expected:   []string{"APPLE", "CAT"},
		},
		{
			name:       "missing category counts as default",
			language:   "en",
			categories: []string{domain.DefaultCategory},
			expected:   []string{"DOG"},
		},
		{
			name:     "other language",
			language: "tr",
			expected: []string{"KEDI"},
		},
		{
			name:     "unknown language is empty",
			language: "zh",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Load(all, tt.language, tt.categories)
			assert.Equal(t, tt.expected, texts(d))
			assert.Equal(t, len(tt.expected), d.Len())
		})
	}
}

func TestDictionary_PrefixMatches(t *testing.T) {
	d := Load([]domain.WordEntry{
		entry("CATNIP", "en", ""),
		entry("CAR", "en", ""),
		entry("CAT", "en", ""),
		entry("DOG", "en", ""),
		entry("CAT", "en", "pets"),
	}, "en", nil)

	tests := []struct {
		name     string
		prefix   string
		expected []int
	}{
		{name: "empty prefix returns everything", prefix: "", expected: []int{0, 1, 2, 3, 4}},
		{name: "shared prefix in source order", prefix: "CA", expected: []int{0, 1, 2, 4}},
		{name: "exact text includes longer words", prefix: "CAT", expected: []int{0, 2, 4}},
		{name: "single candidate", prefix: "D", expected: []int{3}},
		{name: "no candidates", prefix: "X", expected: nil},
		{name: "longer than any entry", prefix: "CATNIPS", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.PrefixMatches([]rune(tt.prefix)))
		})
	}
}

func TestDictionary_MultiByteLetters(t *testing.T) {
	d := Load([]domain.WordEntry{
		entry("ÇAY", "tr", ""),
		entry("ÇİÇEK", "tr", ""),
		entry("CAM", "tr", ""),
	}, "tr", nil)

	assert.Equal(t, []int{0, 1}, d.PrefixMatches([]rune("Ç")))
	assert.Equal(t, []rune("ÇİÇEK"), d.Letters(1))
	assert.Equal(t, "CAM", d.Entry(2).Text)
}
