// internal/infra/telegram/client.go
package telegram

import (
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/telebot.v3"
)

// Settings used to construct the bot.
type Settings struct {
	Token string
	// URL overrides the Bot API base URL. Empty means api.telegram.org.
	URL string
	// Poll enables the long poller used for commands.
	Poll bool
	// Offline skips the getMe call on construction.
	Offline bool
	OnError func(error, telebot.Context)
}

// NewBot builds a telebot.Bot from Settings.
func NewBot(s Settings) (*telebot.Bot, error) {
	pref := telebot.Settings{
		URL:     s.URL,
		Token:   s.Token,
		Offline: s.Offline,
		OnError: s.OnError,
	}
	if s.Poll {
		pref.Poller = &telebot.LongPoller{Timeout: 10 * time.Second}
	}
	b, err := telebot.NewBot(pref)
	if err != nil {
		return nil, errors.Wrap(err, "create telegram bot")
	}
	return b, nil
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the given chat.
func (tba *TelebotAdapter) SendMessage(chatID int64, text string) error {
	_, err := tba.bot.Send(telebot.ChatID(chatID), text, &telebot.SendOptions{DisableWebPagePreview: true})
	return err
}
