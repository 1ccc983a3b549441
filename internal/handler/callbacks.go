package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, playerID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if isNotModified(err) {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("player_id", playerID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("player_id", playerID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// splitCallback returns the unique and payload of a button press. Telegram
// clients sometimes deliver the raw "\funique|payload" form with Unique empty.
func splitCallback(unique, data string) (string, string) {
	data = cleanCallbackData(data)
	if unique != "" {
		return unique, data
	}
	if i := strings.IndexByte(data, '|'); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, ""
}

// handleCallback handles callback queries of buttons that carry a payload
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	unique, payload := splitCallback(callback.Unique, callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("unique", unique),
		zap.String("payload", payload),
		zap.String("id", callback.ID),
		zap.Int64("player_id", c.Sender().ID),
	)

	switch unique {
	case uniqueLetter:
		return h.handleLetter(c, payload)
	case uniqueSuggest:
		return h.handleSuggest(c, payload)
	case uniqueToken:
		return h.handleToken(c, payload)
	case uniqueEvict:
		return h.handleEvict(c, payload)
	case uniqueLanguage:
		return h.handleLanguageSelection(c, payload)
	case uniqueCategory:
		return h.handleCategoryToggle(c, payload)
	case btnNewGame.Unique:
		return h.handleNewGame(c)
	case btnLanguages.Unique:
		return h.handleLanguages(c)
	case btnCategories.Unique:
		return h.handleCategories(c)
	case btnMode.Unique:
		return h.handleMode(c)
	case btnMainMenu.Unique:
		return h.handleStart(c)
	case btnBackspace.Unique:
		return h.handleBackspace(c)
	case btnClear.Unique:
		return h.handleClear(c)
	case btnCommit.Unique:
		return h.handleCommit(c)
	case btnPlay.Unique:
		return h.handlePlay(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", callback.Data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
