package handler

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/service"
	"github.com/ifund-app/ifund/internal/telegram"
)

// callbackChat resolves the chat and linked user behind a callback
// query. A nil user means the reply has already been sent.
func (h *Handler) callbackChat(ctx context.Context, b *bot.Bot, update *models.Update) (int64, *domain.User) {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return 0, nil
	}
	chatID := update.CallbackQuery.Message.Message.Chat.ID
	h.pacer.Cancel(chatID)
	telegram.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	user, err := h.userService.GetByChatSender(ctx, chatID)
	if err != nil {
		telegram.SendText(ctx, b, chatID, "❓ Type LOGIN to start.")
		return chatID, nil
	}
	return chatID, user
}

func (h *Handler) handleBalance(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, user := h.callbackChat(ctx, b, update)
	if user == nil {
		return
	}

	telegram.SendKeyboard(ctx, b, chatID,
		fmt.Sprintf("💰 Your balance\n\nPoints: %d\nCash: ₱%s", user.Points, user.CashBalance.StringFixed(2)),
		telegram.DashboardKeyboard())
}

func (h *Handler) handleTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, user := h.callbackChat(ctx, b, update)
	if user == nil {
		return
	}

	challenge, err := h.taskService.Issue(ctx, user.ID, domain.ChannelChat)
	if err != nil {
		if ce, ok := domain.AsCooldown(err); ok {
			secs := int64(math.Ceil(ce.Remaining.Seconds()))
			telegram.SendText(ctx, b, chatID,
				fmt.Sprintf("⏳ Easy there! Wait %d more second(s) before the next task.", secs))
			return
		}
		slog.Error("issue chat task", "chat_id", chatID, "error", err)
		telegram.SendText(ctx, b, chatID, "⚠️ Something went wrong. Please try again.")
		return
	}

	if err := h.setState(ctx, chatID, domain.ChatAwaitingAnswer, ""); err != nil {
		slog.Error("save chat state", "chat_id", chatID, "error", err)
		telegram.SendText(ctx, b, chatID, "⚠️ Something went wrong. Please try again.")
		return
	}

	question := challenge.Question
	reward := challenge.Reward
	h.pacer.Schedule(ctx, chatID, []telegram.Step{
		{Send: func(ctx context.Context) {
			telegram.SendText(ctx, b, chatID,
				fmt.Sprintf("📋 Here comes a task worth %d point(s)...", reward))
		}},
		{Delay: config.ChatStepDelay, Send: func(ctx context.Context) {
			telegram.SendText(ctx, b, chatID, question)
		}},
	})
}

func (h *Handler) handleInfo(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, user := h.callbackChat(ctx, b, update)
	if user == nil {
		return
	}

	telegram.SendKeyboard(ctx, b, chatID,
		fmt.Sprintf("ℹ️ Account info\n\nUsername: %s\nChat code: %s\nReferrals: %d\nReferral earnings: ₱%s",
			user.Username,
			service.MessengerCode(chatID),
			user.Referrals,
			user.ReferralBalance.StringFixed(2)),
		telegram.DashboardKeyboard())
}
