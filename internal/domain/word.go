package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultCategory is the category of entries that were authored without one
const DefaultCategory = "general"

// WordEntry is a single vocabulary entry
type WordEntry struct {
	Text     string
	Language string
	Category string
	AssetRef string
}

// Letters returns the entry text as its token sequence
func (w WordEntry) Letters() []rune {
	return []rune(w.Text)
}

// CategoryOrDefault returns the entry category, or DefaultCategory when it has none
func (w WordEntry) CategoryOrDefault() string {
	if strings.TrimSpace(w.Category) == "" {
		return DefaultCategory
	}
	return w.Category
}

// NormalizeText trims and upper-cases vocabulary text the way the authoring tool
// stores it. Text is composed to NFC so every letter is a single rune.
func NormalizeText(s string) string {
	return strings.ToUpper(norm.NFC.String(strings.TrimSpace(s)))
}
