package engine

import "wordballs/internal/domain"

// sentence is the ordered list of committed words in sentence mode
type sentence struct {
	words []domain.CommittedWord
}

func (s *sentence) commit(tokens []domain.Token) {
	s.words = append(s.words, domain.NewCommittedWord(tokens))
}

func (s *sentence) evict(index int) bool {
	if index < 0 || index >= len(s.words) {
		return false
	}
	next := make([]domain.CommittedWord, 0, len(s.words)-1)
	next = append(next, s.words[:index]...)
	s.words = append(next, s.words[index+1:]...)
	return true
}

func (s *sentence) clear() {
	s.words = nil
}

func (s *sentence) texts() []string {
	out := make([]string, len(s.words))
	for i, w := range s.words {
		out[i] = w.Text()
	}
	return out
}

func (s *sentence) snapshot() []domain.CommittedWord {
	out := make([]domain.CommittedWord, len(s.words))
	copy(out, s.words)
	return out
}
