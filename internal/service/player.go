package service

import (
	"errors"
	"fmt"

	"wordballs/internal/domain"
	"wordballs/internal/repository"
)

// ErrUnknownLanguage is returned when a player picks a language without vocabulary
var ErrUnknownLanguage = errors.New("unknown language")

// PlayerService handles player settings
type PlayerService struct {
	playerRepo      repository.PlayerRepository
	vocabRepo       repository.VocabularyRepository
	defaultLanguage string
}

// NewPlayerService creates a new player service
func NewPlayerService(playerRepo repository.PlayerRepository, vocabRepo repository.VocabularyRepository, defaultLanguage string) *PlayerService {
	if defaultLanguage == "" {
		defaultLanguage = domain.DefaultLanguage
	}
	return &PlayerService{
		playerRepo:      playerRepo,
		vocabRepo:       vocabRepo,
		defaultLanguage: defaultLanguage,
	}
}

// EnsurePlayerExists creates player record if doesn't exist
func (s *PlayerService) EnsurePlayerExists(playerID int64) error {
	return s.playerRepo.EnsurePlayerExists(playerID, s.defaultLanguage)
}

// GetSettings returns the player's settings, or the defaults for an unknown player
func (s *PlayerService) GetSettings(playerID int64) (*domain.Player, error) {
	player, err := s.playerRepo.GetPlayer(playerID)
	if err != nil {
		return nil, fmt.Errorf("get player %d: %w", playerID, err)
	}
	if player == nil {
		return &domain.Player{PlayerID: playerID, Language: s.defaultLanguage}, nil
	}
	if player.Language == "" {
		player.Language = s.defaultLanguage
	}
	return player, nil
}

// Languages returns the languages players can pick
func (s *PlayerService) Languages() ([]string, error) {
	return s.vocabRepo.ListLanguages()
}

// Categories returns the categories available in the player's language
func (s *PlayerService) Categories(playerID int64) ([]string, error) {
	player, err := s.GetSettings(playerID)
	if err != nil {
		return nil, err
	}
	return s.vocabRepo.ListCategories(player.Language)
}

// SetLanguage switches the player's language. The category filter is reset
// since categories belong to a language.
func (s *PlayerService) SetLanguage(playerID int64, language string) (*domain.Player, error) {
	languages, err := s.vocabRepo.ListLanguages()
	if err != nil {
		return nil, err
	}
	if !contains(languages, language) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}

	player, err := s.GetSettings(playerID)
	if err != nil {
		return nil, err
	}
	if player.Language == language {
		return player, nil
	}
	player.Language = language
	player.Categories = nil
	return player, s.playerRepo.UpdateSettings(player)
}

// ToggleCategory adds the category to the player's filter, or removes it if present.
// An empty filter means every category.
func (s *PlayerService) ToggleCategory(playerID int64, category string) (*domain.Player, error) {
	player, err := s.GetSettings(playerID)
	if err != nil {
		return nil, err
	}

	if player.HasCategory(category) {
		kept := make([]string, 0, len(player.Categories))
		for _, c := range player.Categories {
			if c != category {
				kept = append(kept, c)
			}
		}
		player.Categories = kept
	} else {
		player.Categories = append(player.Categories, category)
	}
	return player, s.playerRepo.UpdateSettings(player)
}

// ToggleSentenceMode flips between single-word and sentence mode
func (s *PlayerService) ToggleSentenceMode(playerID int64) (*domain.Player, error) {
	player, err := s.GetSettings(playerID)
	if err != nil {
		return nil, err
	}
	player.SentenceMode = !player.SentenceMode
	return player, s.playerRepo.UpdateSettings(player)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
