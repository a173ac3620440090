package middleware

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Sender delivers notices to users. *tgbotapi.BotAPI implements it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// HandlerFunc processes one update
type HandlerFunc func(tgbotapi.Update)

// Middleware wraps update processing
type Middleware interface {
	Handle(update tgbotapi.Update, next func(tgbotapi.Update))
}

// Chain runs the middlewares in order around final
func Chain(final HandlerFunc, mws ...Middleware) HandlerFunc {
	h := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, next := mws[i], h
		h = func(u tgbotapi.Update) { mw.Handle(u, next) }
	}
	return h
}

// origin extracts the user and chat of an update; ok is false for update
// kinds the bot does not handle
func origin(update tgbotapi.Update) (userID, chatID int64, ok bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.From.ID, update.CallbackQuery.Message.Chat.ID, true
	default:
		return 0, 0, false
	}
}
