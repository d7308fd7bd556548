// internal/app/notification_service.go
package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"
)

// Notifier delivers one text message to the operator.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// TelegramNotifier sends every message to a single configured chat.
type TelegramNotifier struct {
	telegramClient domainTelegram.Client
	chatID         int64
	logger         *logrus.Entry
}

func NewTelegramNotifier(tc domainTelegram.Client, chatID int64, logger *logrus.Entry) *TelegramNotifier {
	return &TelegramNotifier{
		telegramClient: tc,
		chatID:         chatID,
		logger:         logger,
	}
}

// Send makes exactly one bot API call. Failures come back as *homework.NotificationError.
func (n *TelegramNotifier) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return &homework.NotificationError{ChatID: n.chatID, Err: err}
	}
	if err := n.telegramClient.SendMessage(n.chatID, text); err != nil {
		return &homework.NotificationError{ChatID: n.chatID, Err: err}
	}
	n.logger.WithField("chat_id", n.chatID).Debugf("Message sent: %s", text)
	return nil
}
