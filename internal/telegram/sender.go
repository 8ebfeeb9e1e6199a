package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// SendText sends a plain text message, logging failures instead of
// propagating them. Chat delivery errors never abort the conversation.
func SendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		slog.Error("send message", "chat_id", chatID, "error", err)
	}
}

// SendKeyboard sends a text message with an inline keyboard attached.
func SendKeyboard(ctx context.Context, b *bot.Bot, chatID int64, text string, markup *models.InlineKeyboardMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		slog.Error("send keyboard message", "chat_id", chatID, "error", err)
	}
}

// AnswerCallback acknowledges a callback query so the client stops
// showing a spinner on the pressed button.
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})
	if err != nil {
		slog.Warn("answer callback query", "error", err)
	}
}
