package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/telegram"
)

const welcomeText = "👋 Welcome to iFund!\n\n" +
	"I can show your balance, hand out reward tasks and keep you " +
	"posted on your account.\n\n" +
	"Type LOGIN to link your iFund account."

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}
	chatID := update.Message.Chat.ID
	h.pacer.Cancel(chatID)

	h.sendWelcome(ctx, b, chatID)
}

// sendWelcome greets the sender, with the dashboard attached when the
// chat is already linked to an account.
func (h *Handler) sendWelcome(ctx context.Context, b *bot.Bot, chatID int64) {
	user, err := h.userService.GetByChatSender(ctx, chatID)
	switch {
	case err == nil:
		telegram.SendKeyboard(ctx, b, chatID,
			"👋 Welcome back, "+user.Username+"! What would you like to do?",
			telegram.DashboardKeyboard())
	case errors.Is(err, domain.ErrUserNotFound):
		telegram.SendText(ctx, b, chatID, welcomeText)
	default:
		slog.Error("look up chat sender", "chat_id", chatID, "error", err)
		telegram.SendText(ctx, b, chatID, "⚠️ Something went wrong. Please try again.")
	}
}
