package engine

import (
	"wordballs/internal/dictionary"
	"wordballs/internal/domain"
)

// Match computes the match result for a buffer against the dictionary.
// It is pure: the same inputs always give the same result.
func Match(dict *dictionary.Dictionary, buffer []rune) domain.MatchResult {
	n := len(buffer)
	matches := dict.PrefixMatches(buffer)

	res := domain.MatchResult{ValidNextLetters: []rune{}}
	seen := make(map[rune]struct{})
	for _, pos := range matches {
		letters := dict.Letters(pos)
		if len(letters) > n {
			next := letters[n]
			if _, ok := seen[next]; !ok {
				seen[next] = struct{}{}
				res.ValidNextLetters = append(res.ValidNextLetters, next)
			}
			continue
		}
		// len(letters) == n here, so the entry is the buffer itself
		if n > 0 && res.ExactMatch == nil {
			res.ExactMatch = dict.Entry(pos)
		}
	}

	if len(matches) == 1 && len(dict.Letters(matches[0])) > n {
		res.Suggestion = dict.Entry(matches[0])
	}
	return res
}

// hasPrefix reports whether word starts with prefix
func hasPrefix(word, prefix []rune) bool {
	if len(prefix) > len(word) {
		return false
	}
	for i, r := range prefix {
		if word[i] != r {
			return false
		}
	}
	return true
}
