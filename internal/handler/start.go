package handler

import (
	"errors"
	"strconv"

	"wordballs/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const errorText = "Something went wrong. Please try again later."

// handleStart handles /start command and the menu button
func (h *Handler) handleStart(c tele.Context) error {
	playerID := c.Sender().ID

	h.logger.Info("Player opened menu",
		zap.Int64("player_id", playerID),
		zap.String("username", c.Sender().Username),
	)

	player, err := h.playerService.GetSettings(playerID)
	if err != nil {
		h.logger.Error("Failed to load player settings", zap.Error(err))
		return c.Send(errorText)
	}

	return h.show(c, menuText(player), mainMenuMarkup())
}

// handleLanguages shows the language picker
func (h *Handler) handleLanguages(c tele.Context) error {
	playerID := c.Sender().ID

	player, err := h.playerService.GetSettings(playerID)
	if err != nil {
		h.logger.Error("Failed to load player settings", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	languages, err := h.playerService.Languages()
	if err != nil {
		h.logger.Error("Failed to list languages", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	return h.show(c, "🌐 Pick a language:", languagesMarkup(languages, player.Language))
}

// handleLanguageSelection stores the picked language
func (h *Handler) handleLanguageSelection(c tele.Context, language string) error {
	playerID := c.Sender().ID

	player, err := h.playerService.SetLanguage(playerID, language)
	if errors.Is(err, service.ErrUnknownLanguage) {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown language"})
	}
	if err != nil {
		h.logger.Error("Failed to set language", zap.Error(err), zap.Int64("player_id", playerID))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	h.logger.Info("Language changed",
		zap.Int64("player_id", playerID),
		zap.String("language", language),
	)
	return h.show(c, menuText(player), mainMenuMarkup())
}

// handleCategories shows the category filter
func (h *Handler) handleCategories(c tele.Context) error {
	playerID := c.Sender().ID

	player, err := h.playerService.GetSettings(playerID)
	if err != nil {
		h.logger.Error("Failed to load player settings", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	categories, err := h.playerService.Categories(playerID)
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	return h.show(c, "🗂 Pick categories (none picked means all):", categoriesMarkup(categories, player))
}

// handleCategoryToggle adds or removes one category from the filter. The
// payload is the category's index in the listing the keyboard was built from.
func (h *Handler) handleCategoryToggle(c tele.Context, payload string) error {
	playerID := c.Sender().ID

	categories, err := h.playerService.Categories(playerID)
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	index, err := strconv.Atoi(payload)
	if err != nil || index < 0 || index >= len(categories) {
		h.logger.Warn("Unknown category button", zap.String("payload", payload), zap.Int64("player_id", playerID))
		return c.Respond(&tele.CallbackResponse{Text: "Unknown category"})
	}

	player, err := h.playerService.ToggleCategory(playerID, categories[index])
	if err != nil {
		h.logger.Error("Failed to toggle category", zap.Error(err), zap.Int64("player_id", playerID))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	return h.show(c, "🗂 Pick categories (none picked means all):", categoriesMarkup(categories, player))
}

// handleMode switches between single-word and sentence mode
func (h *Handler) handleMode(c tele.Context) error {
	playerID := c.Sender().ID

	player, err := h.playerService.ToggleSentenceMode(playerID)
	if err != nil {
		h.logger.Error("Failed to toggle sentence mode", zap.Error(err), zap.Int64("player_id", playerID))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	return h.show(c, menuText(player), mainMenuMarkup())
}

// show edits the message if callback, sends new if command
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}
