// Package dictionary holds the read-only vocabulary of a game session.
//
// Entries keep their source order, which is the tie-break order for every
// lookup. A patricia trie keyed by entry text answers prefix queries; each trie
// item is the list of source positions sharing that text, since duplicate texts
// across categories are allowed.
package dictionary

import (
	"sort"

	"wordballs/internal/domain"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Dictionary is the filtered vocabulary of one session. It is never mutated after Load.
type Dictionary struct {
	entries []domain.WordEntry
	letters [][]rune
	trie    *patricia.Trie
}

// Load filters allWords by language and, when categories is non-empty, by category.
// Entries without a category belong to domain.DefaultCategory. Entries with empty
// text can never be spelled and are skipped.
func Load(allWords []domain.WordEntry, language string, categories []string) *Dictionary {
	allowed := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		allowed[c] = struct{}{}
	}

	d := &Dictionary{trie: patricia.NewTrie()}
	for _, w := range allWords {
		if w.Text == "" || w.Language != language {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[w.CategoryOrDefault()]; !ok {
				continue
			}
		}
		d.add(w)
	}
	return d
}

func (d *Dictionary) add(w domain.WordEntry) {
	pos := len(d.entries)
	d.entries = append(d.entries, w)
	d.letters = append(d.letters, w.Letters())

	key := patricia.Prefix(w.Text)
	if item := d.trie.Get(key); item != nil {
		d.trie.Set(key, append(item.([]int), pos))
		return
	}
	d.trie.Insert(key, []int{pos})
}

// Len returns the number of entries
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Entry returns the entry at source position i
func (d *Dictionary) Entry(i int) *domain.WordEntry {
	return &d.entries[i]
}

// Letters returns the token sequence of the entry at position i
func (d *Dictionary) Letters(i int) []rune {
	return d.letters[i]
}

// Entries returns a copy of all entries in source order
func (d *Dictionary) Entries() []domain.WordEntry {
	out := make([]domain.WordEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

// PrefixMatches returns the positions of all entries whose text starts with
// prefix, in source order. UTF-8 is prefix-free per rune, so a byte prefix of
// the text is exactly a token prefix.
func (d *Dictionary) PrefixMatches(prefix []rune) []int {
	if len(prefix) == 0 {
		positions := make([]int, len(d.entries))
		for i := range positions {
			positions[i] = i
		}
		return positions
	}

	var positions []int
	_ = d.trie.VisitSubtree(patricia.Prefix(string(prefix)), func(_ patricia.Prefix, item patricia.Item) error {
		positions = append(positions, item.([]int)...)
		return nil
	})
	sort.Ints(positions)
	return positions
}
