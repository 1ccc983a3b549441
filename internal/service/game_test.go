package service

import (
	"fmt"
	"testing"
	"time"

	"wordballs/internal/domain"
	"wordballs/internal/engine"
	"wordballs/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGameService(t *testing.T, sentenceMode bool, categories ...string) (*GameService, *testutil.MockVocabularyRepository, *engine.ManualScheduler, *testutil.FakeClock) {
	t.Helper()

	playerRepo := new(testutil.MockPlayerRepository)
	vocabRepo := new(testutil.MockVocabularyRepository)
	playerRepo.On("GetPlayer", int64(123)).Return(testutil.NewTestPlayer(123, "en", sentenceMode, categories...), nil)

	words := append(testutil.NewTestEntries("en", "animals", "CAT", "DOG"), testutil.NewTestEntries("en", "food", "CAKE")...)
	vocabRepo.On("ListWords", "en").Return(words, nil)

	sched := engine.NewManualScheduler()
	clock := &testutil.FakeClock{Current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	players := NewPlayerService(playerRepo, vocabRepo, "en")
	service := NewGameService(players, vocabRepo, sched, engine.Options{AutoCommit: true}, testutil.NewTestLogger())
	service.SetClock(clock.Now)

	return service, vocabRepo, sched, clock
}

func TestGameService_StartGame(t *testing.T) {
	tests := []struct {
		name         string
		sentenceMode bool
		categories   []string
		expectedSize int
	}{
		{name: "all categories", expectedSize: 3},
		{name: "category filter", categories: []string{"food"}, expectedSize: 1},
		{name: "sentence mode", sentenceMode: true, expectedSize: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, vocabRepo, _, _ := newTestGameService(t, tt.sentenceMode, tt.categories...)

			game, err := service.StartGame(123, nil)

			require.NoError(t, err)
			assert.Equal(t, int64(123), game.PlayerID)
			assert.Equal(t, "en", game.Language)
			assert.Equal(t, tt.expectedSize, game.Session.Dictionary().Len())
			assert.Equal(t, tt.sentenceMode, game.Session.SentenceMode())

			running, ok := service.Game(123)
			assert.True(t, ok)
			assert.Same(t, game, running)
			vocabRepo.AssertExpectations(t)
		})
	}
}

func TestGameService_StartGameEmptyVocabulary(t *testing.T) {
	service, _, _, _ := newTestGameService(t, false, "vehicles")

	game, err := service.StartGame(123, nil)

	assert.ErrorIs(t, err, ErrEmptyVocabulary)
	assert.Nil(t, game)
	assert.Equal(t, 0, service.ActiveGames())
}

func TestGameService_StartGameRepositoryError(t *testing.T) {
	playerRepo := new(testutil.MockPlayerRepository)
	vocabRepo := new(testutil.MockVocabularyRepository)
	playerRepo.On("GetPlayer", int64(123)).Return(testutil.NewTestPlayer(123, "en", false), nil)
	vocabRepo.On("ListWords", "en").Return(nil, fmt.Errorf("db error"))

	service := NewGameService(NewPlayerService(playerRepo, vocabRepo, "en"), vocabRepo, engine.NewManualScheduler(), engine.Options{}, testutil.NewTestLogger())

	_, err := service.StartGame(123, nil)

	assert.Error(t, err)
	assert.Equal(t, 0, service.ActiveGames())
}

func TestGameService_RestartClosesPreviousSession(t *testing.T) {
	service, _, sched, _ := newTestGameService(t, false)

	first, err := service.StartGame(123, nil)
	require.NoError(t, err)
	first.Session.AppendLetter('D')
	require.NoError(t, first.Session.Autofill(*first.Session.Result().Suggestion))
	require.Equal(t, 2, sched.Pending())

	second, err := service.StartGame(123, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 0, sched.Pending())
	sched.Advance(time.Second)
	assert.Equal(t, "D", first.Session.Text())
	assert.Equal(t, 1, service.ActiveGames())
}

func TestGameService_EndGame(t *testing.T) {
	service, _, _, _ := newTestGameService(t, false)

	_, err := service.StartGame(123, nil)
	require.NoError(t, err)

	assert.True(t, service.EndGame(123))
	assert.False(t, service.EndGame(123))

	_, ok := service.Game(123)
	assert.False(t, ok)
}

func TestGameService_ReapIdle(t *testing.T) {
	service, _, _, clock := newTestGameService(t, false)

	_, err := service.StartGame(123, nil)
	require.NoError(t, err)

	clock.Add(20 * time.Minute)
	assert.Equal(t, 0, service.ReapIdle(30*time.Minute))

	// Touching the game resets its idle time
	_, ok := service.Game(123)
	require.True(t, ok)
	clock.Add(20 * time.Minute)
	assert.Equal(t, 0, service.ReapIdle(30*time.Minute))

	clock.Add(11 * time.Minute)
	assert.Equal(t, 1, service.ReapIdle(30*time.Minute))
	assert.Equal(t, 0, service.ActiveGames())
}

func TestGameService_EndAll(t *testing.T) {
	service, _, sched, _ := newTestGameService(t, false)

	game, err := service.StartGame(123, nil)
	require.NoError(t, err)
	require.NoError(t, game.Session.Autofill(domain.WordEntry{Text: "CAT", Language: "en"}))

	// Touched in the same clock tick as the shutdown
	_, ok := service.Game(123)
	require.True(t, ok)

	assert.Equal(t, 1, service.EndAll())
	assert.Equal(t, 0, service.ActiveGames())

	assert.Equal(t, 0, sched.Advance(time.Second))
	assert.Equal(t, "", game.Session.Text())

	assert.Equal(t, 0, service.EndAll())
}
