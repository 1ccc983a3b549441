package domain

import "unicode"

// TokenID identifies one letter token for the lifetime of a session
type TokenID uint64

// Token is a single letter placed by the player
type Token struct {
	ID     TokenID
	Letter rune
}

// NormalizeLetter keeps the single uppercase character invariant of buffer tokens
func NormalizeLetter(ch rune) rune {
	return unicode.ToUpper(ch)
}

// CommittedWord is a locked word in sentence mode.
// Its tokens are copied on creation and never handed out by reference.
type CommittedWord struct {
	tokens []Token
}

// NewCommittedWord creates a committed word from a snapshot of tokens
func NewCommittedWord(tokens []Token) CommittedWord {
	cp := make([]Token, len(tokens))
	copy(cp, tokens)
	return CommittedWord{tokens: cp}
}

// Tokens returns a copy of the word's tokens
func (w CommittedWord) Tokens() []Token {
	cp := make([]Token, len(w.tokens))
	copy(cp, w.tokens)
	return cp
}

// Text returns the plain text of the word
func (w CommittedWord) Text() string {
	return TokensText(w.tokens)
}

// Len returns the number of letters in the word
func (w CommittedWord) Len() int {
	return len(w.tokens)
}

// TokensText joins token letters into a string
func TokensText(tokens []Token) string {
	letters := make([]rune, len(tokens))
	for i, t := range tokens {
		letters[i] = t.Letter
	}
	return string(letters)
}
