package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"wordballs/internal/dictionary"
	"wordballs/internal/engine"
	"wordballs/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyVocabulary is returned when the player's filter leaves no words to play
var ErrEmptyVocabulary = errors.New("no words for the selected language and categories")

// Game is one running session of a player
type Game struct {
	ID       uuid.UUID
	PlayerID int64
	Language string
	Session  *engine.Session

	startedAt  time.Time
	lastActive time.Time
}

// GameService keeps one session per player
type GameService struct {
	players   *PlayerService
	vocabRepo repository.VocabularyRepository
	scheduler engine.Scheduler
	options   engine.Options
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	games map[int64]*Game
}

// NewGameService creates a new game service. options carries the tuning shared
// by every session; sentence mode is taken from each player's settings.
func NewGameService(players *PlayerService, vocabRepo repository.VocabularyRepository, scheduler engine.Scheduler, options engine.Options, logger *zap.Logger) *GameService {
	return &GameService{
		players:   players,
		vocabRepo: vocabRepo,
		scheduler: scheduler,
		options:   options,
		logger:    logger,
		now:       time.Now,
		games:     make(map[int64]*Game),
	}
}

// SetClock replaces the time source used for idle tracking
func (s *GameService) SetClock(now func() time.Time) {
	s.now = now
}

// StartGame builds a fresh session from the player's settings, replacing any running one
func (s *GameService) StartGame(playerID int64, dispatcher engine.Dispatcher) (*Game, error) {
	player, err := s.players.GetSettings(playerID)
	if err != nil {
		return nil, err
	}

	words, err := s.vocabRepo.ListWords(player.Language)
	if err != nil {
		return nil, fmt.Errorf("list words for %s: %w", player.Language, err)
	}

	dict := dictionary.Load(words, player.Language, player.Categories)
	if dict.Len() == 0 {
		return nil, ErrEmptyVocabulary
	}

	opts := s.options
	opts.SentenceMode = player.SentenceMode

	id := uuid.New()
	now := s.now()
	game := &Game{
		ID:         id,
		PlayerID:   playerID,
		Language:   player.Language,
		Session:    engine.NewSession(dict, dispatcher, s.scheduler, opts, s.logger.With(zap.Int64("player_id", playerID), zap.String("session_id", id.String()))),
		startedAt:  now,
		lastActive: now,
	}

	s.mu.Lock()
	previous := s.games[playerID]
	s.games[playerID] = game
	s.mu.Unlock()

	if previous != nil {
		previous.Session.Close()
	}

	s.logger.Info("Game started",
		zap.Int64("player_id", playerID),
		zap.String("session_id", id.String()),
		zap.String("language", player.Language),
		zap.Int("words", dict.Len()),
		zap.Bool("sentence_mode", opts.SentenceMode),
	)

	return game, nil
}

// Game returns the player's running game and marks it active
func (s *GameService) Game(playerID int64) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[playerID]
	if ok {
		game.lastActive = s.now()
	}
	return game, ok
}

// EndGame stops the player's game. It reports whether one was running.
func (s *GameService) EndGame(playerID int64) bool {
	s.mu.Lock()
	game, ok := s.games[playerID]
	delete(s.games, playerID)
	s.mu.Unlock()

	if ok {
		game.Session.Close()
		s.logger.Info("Game ended",
			zap.Int64("player_id", playerID),
			zap.String("session_id", game.ID.String()),
			zap.Duration("played", s.now().Sub(game.startedAt)),
		)
	}
	return ok
}

// ActiveGames returns the number of running games
func (s *GameService) ActiveGames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// EndAll ends every running game and cancels its timers. It returns how many were ended.
func (s *GameService) EndAll() int {
	s.mu.Lock()
	games := s.games
	s.games = make(map[int64]*Game)
	s.mu.Unlock()

	for _, game := range games {
		game.Session.Close()
	}
	if len(games) > 0 {
		s.logger.Info("All games ended", zap.Int("count", len(games)))
	}
	return len(games)
}

// ReapIdle ends every game untouched for longer than maxIdle and returns how many were ended
func (s *GameService) ReapIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var idle []*Game
	for playerID, game := range s.games {
		if game.lastActive.Before(cutoff) {
			idle = append(idle, game)
			delete(s.games, playerID)
		}
	}
	s.mu.Unlock()

	for _, game := range idle {
		game.Session.Close()
	}

	if len(idle) > 0 {
		s.logger.Info("Idle games reaped",
			zap.Int("count", len(idle)),
			zap.Duration("max_idle", maxIdle),
		)
	}
	return len(idle)
}
