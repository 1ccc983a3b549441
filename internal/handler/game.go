package handler

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"wordballs/internal/domain"
	"wordballs/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleNewGame starts a game from the player's settings and sends its message
func (h *Handler) handleNewGame(c tele.Context) error {
	playerID := c.Sender().ID

	view := NewView(h.bot, c.Chat(), h.scheduler, h.logger.With(zap.Int64("player_id", playerID)))

	game, err := h.gameService.StartGame(playerID, view)
	if errors.Is(err, service.ErrEmptyVocabulary) {
		return h.reply(c, "No words match your language and categories. Check the menu.")
	}
	if err != nil {
		h.logger.Error("Failed to start game", zap.Error(err), zap.Int64("player_id", playerID))
		return h.reply(c, errorText)
	}

	view.Attach(game)
	view.Render()

	if c.Callback() != nil {
		return c.Respond()
	}
	return nil
}

// handleStop ends the running game
func (h *Handler) handleStop(c tele.Context) error {
	if !h.gameService.EndGame(c.Sender().ID) {
		return c.Send("No game running.")
	}
	return c.Send("Game over. Send /play for a new one.", mainMenuMarkup())
}

// handleText treats typed letters like letter buttons
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	return h.withGame(c, func(game *service.Game) error {
		for _, ch := range text {
			if unicode.IsLetter(ch) {
				game.Session.AppendLetter(ch)
			}
		}
		return nil
	})
}

// handleLetter appends the letter of a letter button
func (h *Handler) handleLetter(c tele.Context, payload string) error {
	letters := []rune(payload)
	if len(letters) != 1 {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown letter"})
	}

	return h.withGame(c, func(game *service.Game) error {
		game.Session.AppendLetter(letters[0])
		return c.Respond()
	})
}

// handleSuggest autofills the suggested word
func (h *Handler) handleSuggest(c tele.Context, payload string) error {
	return h.withGame(c, func(game *service.Game) error {
		suggestion := game.Session.Result().Suggestion
		if suggestion == nil || strconv.Itoa(len(game.Session.Tokens())) != payload {
			return c.Respond(&tele.CallbackResponse{Text: "That suggestion is gone"})
		}

		if err := game.Session.Autofill(*suggestion); err != nil {
			if errors.Is(err, domain.ErrNotAPrefix) {
				return c.Respond(&tele.CallbackResponse{Text: "That suggestion is gone"})
			}
			h.logger.Error("Failed to autofill", zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: errorText})
		}
		return c.Respond()
	})
}

// handleToken removes one letter of the word
func (h *Handler) handleToken(c tele.Context, payload string) error {
	id, err := strconv.ParseUint(payload, 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown letter"})
	}

	return h.withGame(c, func(game *service.Game) error {
		game.Session.RemoveToken(domain.TokenID(id))
		return c.Respond()
	})
}

// handleBackspace removes the last letter
func (h *Handler) handleBackspace(c tele.Context) error {
	return h.withGame(c, func(game *service.Game) error {
		game.Session.RemoveLast()
		return c.Respond()
	})
}

// handleClear empties the word and the sentence
func (h *Handler) handleClear(c tele.Context) error {
	return h.withGame(c, func(game *service.Game) error {
		game.Session.Clear()
		return c.Respond()
	})
}

// handleCommit locks the current word into the sentence
func (h *Handler) handleCommit(c tele.Context) error {
	return h.withGame(c, func(game *service.Game) error {
		if _, err := game.Session.CommitWord(); err != nil {
			return h.respondEngineError(c, err)
		}
		return c.Respond()
	})
}

// handleEvict removes a committed word
func (h *Handler) handleEvict(c tele.Context, payload string) error {
	index, err := strconv.Atoi(payload)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown word"})
	}

	return h.withGame(c, func(game *service.Game) error {
		if err := game.Session.EvictCommittedWord(index); err != nil {
			return h.respondEngineError(c, err)
		}
		return c.Respond()
	})
}

// handlePlay reads the committed sentence back
func (h *Handler) handlePlay(c tele.Context) error {
	return h.withGame(c, func(game *service.Game) error {
		words := game.Session.CommittedText()
		if len(words) == 0 {
			return c.Respond(&tele.CallbackResponse{Text: "Commit a word first"})
		}

		h.logger.Info("Sentence played",
			zap.Int64("player_id", game.PlayerID),
			zap.String("session_id", game.ID.String()),
			zap.Int("words", len(words)),
		)

		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
		return c.Send("🔊 " + strings.Join(words, " "))
	})
}

// withGame runs fn on the player's running game
func (h *Handler) withGame(c tele.Context, fn func(game *service.Game) error) error {
	game, ok := h.gameService.Game(c.Sender().ID)
	if !ok {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "No game running. Press ▶️ New game.", ShowAlert: true})
		}
		return c.Send("No game running. Send /play to start one.")
	}
	return fn(game)
}

func (h *Handler) respondEngineError(c tele.Context, err error) error {
	var engineErr *domain.Error
	if !errors.As(err, &engineErr) {
		h.logger.Error("Game operation failed", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	switch engineErr.Kind {
	case domain.KindSentenceModeDisabled:
		return c.Respond(&tele.CallbackResponse{Text: "Switch to sentence mode in the menu first", ShowAlert: true})
	case domain.KindInvalidIndex:
		return c.Respond(&tele.CallbackResponse{Text: "That word is gone"})
	default:
		return c.Respond(&tele.CallbackResponse{Text: engineErr.Error()})
	}
}

// reply answers a callback with an alert, or a command with a message
func (h *Handler) reply(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
