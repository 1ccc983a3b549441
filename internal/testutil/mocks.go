package testutil

import (
	"wordballs/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockPlayerRepository is a mock for PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) EnsurePlayerExists(playerID int64, language string) error {
	args := m.Called(playerID, language)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetPlayer(playerID int64) (*domain.Player, error) {
	args := m.Called(playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) UpdateSettings(player *domain.Player) error {
	args := m.Called(player)
	return args.Error(0)
}

// MockVocabularyRepository is a mock for VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) ListWords(language string) ([]domain.WordEntry, error) {
	args := m.Called(language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordEntry), args.Error(1)
}

func (m *MockVocabularyRepository) ListLanguages() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockVocabularyRepository) ListCategories(language string) ([]string, error) {
	args := m.Called(language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
