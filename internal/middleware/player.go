package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// PlayerEnsurer creates a player record on first contact
type PlayerEnsurer interface {
	EnsurePlayerExists(playerID int64) error
}

// EnsurePlayer creates the player record before any handler runs
func EnsurePlayer(players PlayerEnsurer, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				// Channel posts and the like have nobody to play
				return next(c)
			}

			if err := players.EnsurePlayerExists(sender.ID); err != nil {
				logger.Error("Failed to ensure player exists in middleware",
					zap.Int64("player_id", sender.ID),
					zap.Error(err),
				)
				return c.Send("Something went wrong. Please try again later.")
			}

			return next(c)
		}
	}
}
