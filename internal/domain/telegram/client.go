package telegram

// Client sends plain text messages via a Telegram bot.
// It keeps the application logic independent of the bot library.
type Client interface {
	SendMessage(chatID int64, text string) error
}
