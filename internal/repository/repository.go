package repository

import (
	"wordballs/internal/domain"
)

// VocabularyRepository defines vocabulary read operations
type VocabularyRepository interface {
	ListWords(language string) ([]domain.WordEntry, error)
	ListLanguages() ([]string, error)
	ListCategories(language string) ([]string, error)
}

// PlayerRepository defines player data operations
type PlayerRepository interface {
	EnsurePlayerExists(playerID int64, language string) error
	GetPlayer(playerID int64) (*domain.Player, error)
	UpdateSettings(player *domain.Player) error
}
