package domain

// MatchResult is the matcher's view of the buffer against the dictionary.
// ExactMatch and Suggestion point into the session dictionary and must not be modified.
type MatchResult struct {
	ValidNextLetters []rune
	ExactMatch       *WordEntry
	Suggestion       *WordEntry
}

// IsAvailable reports whether ch may be appended next
func (r MatchResult) IsAvailable(ch rune) bool {
	for _, l := range r.ValidNextLetters {
		if l == ch {
			return true
		}
	}
	return false
}

// BufferState is the coarse state of the input buffer
type BufferState string

const (
	BufferEmpty  BufferState = "empty"
	BufferTyping BufferState = "typing"
)
