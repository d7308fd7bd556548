// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"homework_status_bot/internal/domain/homework"
)

// RegisterBotCommands wires /start and /status. Only the configured chat gets answers.
func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	chatID int64,
	stateRepo homework.StateRepository,
	baseLogger *logrus.Entry,
) {
	cmdLogger := baseLogger.WithField("handler_group", "commands")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := cmdLogger.WithField("command", "/start").WithField("chat_id", c.Chat().ID)
		if c.Chat().ID != chatID {
			logCtx.Warn("Command from foreign chat ignored")
			return nil
		}
		logCtx.Info("Processing /start command")
		return c.Send("Привет! Я слежу за статусами проверки домашних работ и пришлю сообщение, когда статус изменится.\n\n/status - последний известный статус.")
	})

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := cmdLogger.WithField("command", "/status").WithField("chat_id", c.Chat().ID)
		if c.Chat().ID != chatID {
			logCtx.Warn("Command from foreign chat ignored")
			return nil
		}
		logCtx.Info("Processing /status command")

		state, err := stateRepo.Load(ctx)
		if err != nil && !errors.Is(err, homework.ErrStateNotFound) {
			logCtx.WithError(err).Error("Failed to load poll state for /status")
			return c.Send("Не удалось прочитать состояние. Попробуйте позже.")
		}
		return c.Send(StatusText(state))
	})
}

// StatusText renders the /status reply for a persisted poll state.
func StatusText(state *homework.PollState) string {
	if state == nil {
		return "Пока ни одного успешного опроса API."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Изменения запрашиваются начиная с %s.", time.Unix(state.Cursor, 0).Format("2006-01-02 15:04:05"))
	if !state.UpdatedAt.IsZero() {
		fmt.Fprintf(&sb, "\nПоследний успешный опрос: %s.", state.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	if state.LastMessage == "" {
		sb.WriteString("\nУведомлений об изменении статуса ещё не было.")
	} else {
		sb.WriteString("\nПоследнее уведомление:\n")
		sb.WriteString(state.LastMessage)
	}
	return sb.String()
}
