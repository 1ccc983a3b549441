package engine

import "wordballs/internal/domain"

// buffer is the player's uncommitted letter sequence.
// Every mutation replaces the token slice rather than editing it in place.
type buffer struct {
	tokens []domain.Token
	nextID domain.TokenID
}

func (b *buffer) append(ch rune) domain.Token {
	b.nextID++
	tok := domain.Token{ID: b.nextID, Letter: domain.NormalizeLetter(ch)}
	next := make([]domain.Token, len(b.tokens), len(b.tokens)+1)
	copy(next, b.tokens)
	b.tokens = append(next, tok)
	return tok
}

func (b *buffer) removeLast() bool {
	if len(b.tokens) == 0 {
		return false
	}
	b.tokens = b.tokens[:len(b.tokens)-1:len(b.tokens)-1]
	return true
}

func (b *buffer) remove(id domain.TokenID) bool {
	for i, t := range b.tokens {
		if t.ID != id {
			continue
		}
		next := make([]domain.Token, 0, len(b.tokens)-1)
		next = append(next, b.tokens[:i]...)
		b.tokens = append(next, b.tokens[i+1:]...)
		return true
	}
	return false
}

func (b *buffer) clear() {
	b.tokens = nil
}

func (b *buffer) empty() bool {
	return len(b.tokens) == 0
}

func (b *buffer) letters() []rune {
	out := make([]rune, len(b.tokens))
	for i, t := range b.tokens {
		out[i] = t.Letter
	}
	return out
}

// snapshot returns a copy safe to hand out
func (b *buffer) snapshot() []domain.Token {
	out := make([]domain.Token, len(b.tokens))
	copy(out, b.tokens)
	return out
}
