package keyboard

import (
	"github.com/futig/scamper-backend/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the initial start button
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 Analizar un problema", EncodeCallback(ActionFlow, FlowStart)),
		),
	)
}

// SkipContextKeyboard lets the user run the analysis without context
func (b *Builder) SkipContextKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin contexto", EncodeCallback(ActionFlow, FlowSkipContext)),
		),
	)
}

// ResultKeyboard offers the export formats and the "another problem?" choice
func (b *Builder) ResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Markdown", EncodeCallback(ActionDownload, string(entity.FormatMarkdown))),
			tgbotapi.NewInlineKeyboardButtonData("📄 PDF", EncodeCallback(ActionDownload, string(entity.FormatPDF))),
			tgbotapi.NewInlineKeyboardButtonData("📃 DOCX", EncodeCallback(ActionDownload, string(entity.FormatDOCX))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Otro problema", EncodeCallback(ActionFlow, FlowAgain)),
			tgbotapi.NewInlineKeyboardButtonData("👋 Terminar", EncodeCallback(ActionFlow, FlowFinish)),
		),
	)
}

// ConfirmCancelKeyboard asks the user to confirm /cancel
func (b *Builder) ConfirmCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Sí, cancelar", EncodeCallback(ActionConfirm, ConfirmCancel)),
			tgbotapi.NewInlineKeyboardButtonData("❌ No, continuar", EncodeCallback(ActionConfirm, ConfirmContinue)),
		),
	)
}
