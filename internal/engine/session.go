// Package engine is the incremental prefix-matching input engine.
//
// A Session owns the player's letter buffer and, in sentence mode, the list of
// committed words. Every operation runs to completion under the session lock,
// including its Dispatcher call-outs, so one interaction is one atomic
// mutation-plus-dispatch cycle. Autofill is the only operation that spans
// several ticks; each tick is itself an ordinary append cycle.
package engine

import (
	"fmt"
	"sync"
	"time"

	"wordballs/internal/dictionary"
	"wordballs/internal/domain"

	"go.uber.org/zap"
)

// DefaultAutofillDelay is the pause between autofilled letters
const DefaultAutofillDelay = 100 * time.Millisecond

// Options configures a session
type Options struct {
	// SentenceMode allows several committed words per round
	SentenceMode bool
	// AutoCommit commits the buffer as soon as typing reaches an exact match (sentence mode)
	AutoCommit bool
	// AutofillDelay is the inter-letter delay of Autofill
	AutofillDelay time.Duration
	// AutoClearDelay clears the buffer this long after typing reaches an exact
	// match (single-word mode). Zero leaves clearing to the caller.
	AutoClearDelay time.Duration
}

// Session is one player's game state over a fixed dictionary
type Session struct {
	mu         sync.Mutex
	dict       *dictionary.Dictionary
	dispatcher Dispatcher
	scheduler  Scheduler
	opts       Options
	logger     *zap.Logger

	buf       buffer
	sentence  sentence
	seq       sequencer
	result    domain.MatchResult
	lastExact *domain.WordEntry
}

// NewSession creates a session with an empty buffer.
// A nil dictionary is treated as empty; a nil dispatcher, scheduler or logger
// falls back to a no-op, the wall clock and a nop logger.
func NewSession(dict *dictionary.Dictionary, dispatcher Dispatcher, scheduler Scheduler, opts Options, logger *zap.Logger) *Session {
	if dict == nil {
		dict = dictionary.Load(nil, "", nil)
	}
	if dispatcher == nil {
		dispatcher = NopDispatcher{}
	}
	if scheduler == nil {
		scheduler = ClockScheduler{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.AutofillDelay <= 0 {
		opts.AutofillDelay = DefaultAutofillDelay
	}

	return &Session{
		dict:       dict,
		dispatcher: dispatcher,
		scheduler:  scheduler,
		opts:       opts,
		logger:     logger,
		result:     Match(dict, nil),
	}
}

// AppendLetter appends ch to the buffer. Appends are never rejected; a letter
// that leads nowhere simply yields no candidates.
func (s *Session) AppendLetter(ch rune) domain.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(ch)
}

// RemoveLast drops the most recent letter. It is a no-op on an empty buffer.
func (s *Session) RemoveLast() domain.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf.empty() {
		return s.result
	}
	s.seq.invalidate()
	s.buf.removeLast()
	res, _ := s.update(false)
	return res
}

// RemoveToken drops one letter of the active buffer by identity.
// Committed words are never touched; an unknown id is a no-op.
func (s *Session) RemoveToken(id domain.TokenID) domain.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.buf.remove(id) {
		return s.result
	}
	s.seq.invalidate()
	res, _ := s.update(false)
	return res
}

// Clear empties the buffer and the committed words
func (s *Session) Clear() domain.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

// CommitWord locks the current buffer in as a committed word and empties the
// buffer. It is a no-op on an empty buffer.
func (s *Session) CommitWord() (domain.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opts.SentenceMode {
		return s.result, &domain.Error{Kind: domain.KindSentenceModeDisabled, Op: "commit word"}
	}
	if s.buf.empty() {
		return s.result, nil
	}
	return s.commitLocked(), nil
}

// EvictCommittedWord removes the committed word at index as a whole unit
func (s *Session) EvictCommittedWord(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opts.SentenceMode {
		return &domain.Error{Kind: domain.KindSentenceModeDisabled, Op: "evict committed word"}
	}
	if !s.sentence.evict(index) {
		return &domain.Error{
			Kind:   domain.KindInvalidIndex,
			Op:     "evict committed word",
			Detail: fmt.Sprintf("index %d not in [0, %d)", index, len(s.sentence.words)),
		}
	}
	s.logger.Debug("Committed word evicted", zap.Int("index", index))
	s.update(false)
	return nil
}

// CommittedText returns the text of every committed word in order
func (s *Session) CommittedText() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sentence.texts()
}

// CommittedWords returns the committed words in order
func (s *Session) CommittedWords() []domain.CommittedWord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sentence.snapshot()
}

// Tokens returns the active buffer
func (s *Session) Tokens() []domain.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.snapshot()
}

// Text returns the active buffer as a string
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.buf.letters())
}

// Result returns the match result of the current buffer
func (s *Session) Result() domain.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// State returns the buffer state
func (s *Session) State() domain.BufferState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf.empty() {
		return domain.BufferEmpty
	}
	return domain.BufferTyping
}

// SentenceMode reports whether the session accepts committed words
func (s *Session) SentenceMode() bool {
	return s.opts.SentenceMode
}

// Dictionary returns the session dictionary
func (s *Session) Dictionary() *dictionary.Dictionary {
	return s.dict
}

// Refresh re-sends availability and suggestion for the current buffer without
// mutating anything, e.g. after the renderer redraws.
func (s *Session) Refresh() domain.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dispatcher.OnAvailabilityChanged(copyLetters(s.result.ValidNextLetters))
	s.dispatcher.OnSuggestionChanged(s.result.Suggestion)
	return s.result
}

// Close cancels every pending timer of the session
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stopped := s.seq.invalidate(); stopped > 0 {
		s.logger.Debug("Pending timers cancelled", zap.Int("count", stopped))
	}
}

func (s *Session) appendLocked(ch rune) domain.MatchResult {
	tok := s.buf.append(ch)
	res, matched := s.update(false)

	s.logger.Debug("Letter appended",
		zap.String("letter", string(tok.Letter)),
		zap.Uint64("token_id", uint64(tok.ID)),
		zap.Int("candidates", len(res.ValidNextLetters)),
	)

	if !matched {
		return res
	}
	switch {
	case s.opts.SentenceMode && s.opts.AutoCommit:
		s.commitLocked()
	case !s.opts.SentenceMode && s.opts.AutoClearDelay > 0:
		exact := res.ExactMatch
		s.seq.schedule(s.scheduler, s.opts.AutoClearDelay, func(gen uint64) {
			s.autoClearTick(gen, exact)
		})
	}
	return res
}

func (s *Session) clearLocked() domain.MatchResult {
	s.seq.invalidate()
	s.buf.clear()
	s.sentence.clear()
	res, _ := s.update(true)
	return res
}

func (s *Session) commitLocked() domain.MatchResult {
	s.seq.invalidate()
	tokens := s.buf.snapshot()
	s.sentence.commit(tokens)
	s.buf.clear()

	s.logger.Debug("Word committed",
		zap.String("word", domain.TokensText(tokens)),
		zap.Int("committed", len(s.sentence.words)),
	)

	res, _ := s.update(true)
	return res
}

// update recomputes the match result and dispatches it. It reports whether
// the buffer just entered an exact-match state.
func (s *Session) update(cleared bool) (domain.MatchResult, bool) {
	res := Match(s.dict, s.buf.letters())
	s.result = res

	s.dispatcher.OnAvailabilityChanged(copyLetters(res.ValidNextLetters))
	s.dispatcher.OnSuggestionChanged(res.Suggestion)

	entered := res.ExactMatch != nil && res.ExactMatch != s.lastExact
	s.lastExact = res.ExactMatch
	if entered {
		s.dispatcher.OnExactMatch(*res.ExactMatch)
	}
	if cleared {
		s.dispatcher.OnBufferCleared()
	}
	return res, entered
}

func copyLetters(letters []rune) []rune {
	out := make([]rune, len(letters))
	copy(out, letters)
	return out
}
