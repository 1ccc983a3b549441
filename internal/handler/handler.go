package handler

import (
	"wordballs/internal/engine"
	"wordballs/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot           *tele.Bot
	playerService *service.PlayerService
	gameService   *service.GameService
	scheduler     engine.Scheduler
	logger        *zap.Logger
}

// NewHandler creates a new handler instance. scheduler drives the debounced
// redraws of game messages.
func NewHandler(
	bot *tele.Bot,
	playerService *service.PlayerService,
	gameService *service.GameService,
	scheduler engine.Scheduler,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		playerService: playerService,
		gameService:   gameService,
		scheduler:     scheduler,
		logger:        logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/play", h.handleNewGame)
	h.bot.Handle("/stop", h.handleStop)

	// Typed letters
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnNewGame, h.handleNewGame)
	h.bot.Handle(&btnLanguages, h.handleLanguages)
	h.bot.Handle(&btnCategories, h.handleCategories)
	h.bot.Handle(&btnMode, h.handleMode)
	h.bot.Handle(&btnMainMenu, h.handleStart)
	h.bot.Handle(&btnBackspace, h.handleBackspace)
	h.bot.Handle(&btnClear, h.handleClear)
	h.bot.Handle(&btnCommit, h.handleCommit)
	h.bot.Handle(&btnPlay, h.handlePlay)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}
