package domain

import "time"

// DefaultLanguage is used for players who never picked one
const DefaultLanguage = "en"

// Player holds a player's game settings
type Player struct {
	PlayerID     int64
	Language     string
	Categories   []string
	SentenceMode bool
	CreatedAt    time.Time
}

// HasCategory reports whether the category is in the player's filter
func (p Player) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}
