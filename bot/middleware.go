package bot

import (
	"context"
	"strconv"

	"github.com/clicepfl/roboclic/metrics"
	tele "gopkg.in/telebot.v4"
)

// tracked counts invocations and errors per command key.
func (b *Bot) tracked(command string) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			metrics.CommandTotal.WithLabelValues(command).Add(1)
			if err := next(c); err != nil {
				metrics.CommandErrors.WithLabelValues(command).Add(1)
				return err
			}
			return nil
		}
	}
}

// requireAuthorization drops the update unless the chat has been granted
// the command key. Denials are silent, like an unknown command.
func (b *Bot) requireAuthorization(command string) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chatID := strconv.FormatInt(c.Chat().ID, 10)
			if !b.gate.IsCommandAuthorized(context.Background(), chatID, command) {
				metrics.CommandDenied.WithLabelValues(command).Add(1)
				return nil
			}
			return next(c)
		}
	}
}

// requireAdmin drops the update unless the sender is a registered admin.
func (b *Bot) requireAdmin(command string) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !b.gate.IsSenderAdmin(context.Background(), senderID(c)) {
				metrics.CommandDenied.WithLabelValues(command).Add(1)
				return nil
			}
			return next(c)
		}
	}
}

// senderID returns the sender's telegram ID, or "" when the update has
// no resolvable sender (channel posts, anonymous admins).
func senderID(c tele.Context) string {
	sender := c.Sender()
	if sender == nil {
		return ""
	}
	return strconv.FormatInt(sender.ID, 10)
}
