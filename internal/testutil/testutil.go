package testutil

import (
	"time"

	"wordballs/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestPlayer creates a test player
func NewTestPlayer(playerID int64, language string, sentenceMode bool, categories ...string) *domain.Player {
	return &domain.Player{
		PlayerID:     playerID,
		Language:     language,
		Categories:   categories,
		SentenceMode: sentenceMode,
		CreatedAt:    time.Now(),
	}
}

// NewTestEntries creates one entry per text in the given language and category
func NewTestEntries(language, category string, texts ...string) []domain.WordEntry {
	entries := make([]domain.WordEntry, len(texts))
	for i, text := range texts {
		entries[i] = domain.WordEntry{
			Text:     text,
			Language: language,
			Category: category,
			AssetRef: "images/" + text + ".png",
		}
	}
	return entries
}

// FakeClock is a settable time source
type FakeClock struct {
	Current time.Time
}

// Now returns the current fake time
func (c *FakeClock) Now() time.Time {
	return c.Current
}

// Add moves the clock forward
func (c *FakeClock) Add(d time.Duration) {
	c.Current = c.Current.Add(d)
}
