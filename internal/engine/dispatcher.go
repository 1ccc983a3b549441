package engine

import "wordballs/internal/domain"

// Dispatcher receives feedback after every mutation. It is implemented by the
// renderer. Calls happen synchronously while the session is locked, so an
// implementation must not call back into the same session from inside a callback.
type Dispatcher interface {
	OnAvailabilityChanged(letters []rune)
	OnSuggestionChanged(suggestion *domain.WordEntry)
	OnExactMatch(entry domain.WordEntry)
	OnBufferCleared()
}

// NopDispatcher ignores all feedback
type NopDispatcher struct{}

func (NopDispatcher) OnAvailabilityChanged([]rune) {}
func (NopDispatcher) OnSuggestionChanged(*domain.WordEntry) {}
func (NopDispatcher) OnExactMatch(domain.WordEntry) {}
func (NopDispatcher) OnBufferCleared() {}
