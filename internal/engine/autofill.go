package engine

import (
	"fmt"
	"time"

	"wordballs/internal/domain"

	"go.uber.org/zap"
)

// sequencer tags every scheduled call with the generation current at
// schedule time. Any buffer-resetting operation calls invalidate, which bumps
// the generation and stops the timers; a call that fires anyway finds its
// generation stale and is dropped.
type sequencer struct {
	generation  uint64
	timers      []Timer
	outstanding int
}

func (q *sequencer) invalidate() int {
	q.generation++
	stopped := 0
	for _, t := range q.timers {
		if t.Stop() {
			stopped++
		}
	}
	q.timers = nil
	q.outstanding = 0
	return stopped
}

func (q *sequencer) schedule(sched Scheduler, delay time.Duration, fire func(gen uint64)) {
	gen := q.generation
	q.outstanding++
	q.timers = append(q.timers, sched.AfterFunc(delay, func() { fire(gen) }))
}

func (q *sequencer) stale(gen uint64) bool {
	return gen != q.generation
}

// done records that a current-generation call has run
func (q *sequencer) done() {
	q.outstanding--
	if q.outstanding <= 0 {
		q.outstanding = 0
		q.timers = nil
	}
}

// Autofill appends the remaining letters of target one per tick, spaced by
// the autofill delay, through the same path as AppendLetter. The buffer must
// be a prefix of target. A previous autofill still in flight is cancelled.
func (s *Session) Autofill(target domain.WordEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	letters := target.Letters()
	current := s.buf.letters()
	if !hasPrefix(letters, current) {
		return &domain.Error{
			Kind:   domain.KindNotAPrefix,
			Op:     "autofill",
			Detail: fmt.Sprintf("%q does not extend %q", target.Text, string(current)),
		}
	}

	if s.seq.outstanding > 0 {
		s.seq.invalidate()
	}

	remaining := letters[len(current):]
	for i, ch := range remaining {
		ch := ch
		s.seq.schedule(s.scheduler, time.Duration(i)*s.opts.AutofillDelay, func(gen uint64) {
			s.autofillTick(gen, ch)
		})
	}

	s.logger.Debug("Autofill scheduled",
		zap.String("target", target.Text),
		zap.Int("letters", len(remaining)),
		zap.Uint64("generation", s.seq.generation),
	)
	return nil
}

func (s *Session) autofillTick(gen uint64, ch rune) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq.stale(gen) {
		s.logger.Debug("Dropping stale autofill tick",
			zap.String("letter", string(ch)),
			zap.Uint64("generation", gen),
			zap.Uint64("current_generation", s.seq.generation),
		)
		return
	}
	s.seq.done()
	s.appendLocked(ch)
}

// autoClearTick clears the buffer only while it still rests on the entry that
// scheduled the clear. Typing past it keeps the longer word in progress.
func (s *Session) autoClearTick(gen uint64, exact *domain.WordEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq.stale(gen) {
		return
	}
	s.seq.done()
	if s.result.ExactMatch != exact {
		s.logger.Debug("Skipping auto-clear, buffer moved past the match",
			zap.String("match", exact.Text),
			zap.String("buffer", string(s.buf.letters())),
		)
		return
	}
	s.clearLocked()
}
