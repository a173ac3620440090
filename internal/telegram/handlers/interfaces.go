package handlers

import (
	"context"

	"github.com/futig/scamper-backend/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the part of the Telegram Bot API the handlers use.
// *tgbotapi.BotAPI implements it.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Analyzer runs the SCAMPER analysis of one problem
type Analyzer interface {
	Analyze(ctx context.Context, input entity.UserInput) (*entity.ScamperResponse, error)
}
