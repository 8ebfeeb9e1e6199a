package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/repository"
	"github.com/ifund-app/ifund/internal/telegram"
)

// HandleText routes free-form private messages through the persisted
// conversation machine. Greetings and LOGIN work from any state; other
// text is interpreted by whatever step the sender is currently on.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	h.pacer.Cancel(chatID)

	switch strings.ToLower(text) {
	case "hi", "hello", "start":
		h.sendWelcome(ctx, b, chatID)
		return
	case "login":
		h.beginLogin(ctx, b, chatID)
		return
	}

	state, err := h.queries.GetChatState(ctx, chatID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		slog.Error("load chat state", "chat_id", chatID, "error", err)
		telegram.SendText(ctx, b, chatID, "⚠️ Something went wrong. Please try again.")
		return
	}

	switch state.Kind() {
	case domain.ChatAwaitingUsername:
		h.receiveUsername(ctx, b, chatID, text)
	case domain.ChatAwaitingPassword:
		h.receivePassword(ctx, b, chatID, state.Payload, text)
	case domain.ChatAwaitingAnswer:
		h.receiveAnswer(ctx, b, chatID, text)
	default:
		telegram.SendText(ctx, b, chatID, "❓ Type LOGIN to start.")
	}
}

func (h *Handler) beginLogin(ctx context.Context, b *bot.Bot, chatID int64) {
	if user, err := h.userService.GetByChatSender(ctx, chatID); err == nil {
		telegram.SendKeyboard(ctx, b, chatID,
			"✅ You are already logged in as "+user.Username+".",
			telegram.DashboardKeyboard())
		return
	}

	if err := h.setState(ctx, chatID, domain.ChatAwaitingUsername, ""); err != nil {
		slog.Error("save chat state", "chat_id", chatID, "error", err)
		return
	}
	telegram.SendText(ctx, b, chatID, "👤 Please enter your iFund username:")
}

func (h *Handler) receiveUsername(ctx context.Context, b *bot.Bot, chatID int64, username string) {
	if username == "" {
		telegram.SendText(ctx, b, chatID, "👤 Please enter your iFund username:")
		return
	}
	if err := h.setState(ctx, chatID, domain.ChatAwaitingPassword, username); err != nil {
		slog.Error("save chat state", "chat_id", chatID, "error", err)
		return
	}
	telegram.SendText(ctx, b, chatID, "🔑 Now enter your password:")
}

func (h *Handler) receivePassword(ctx context.Context, b *bot.Bot, chatID int64, username, password string) {
	code, err := h.userService.LinkChatSender(ctx, chatID, username, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidCredentials):
			telegram.SendText(ctx, b, chatID, "❌ Wrong username or password. Type LOGIN to try again.")
		case errors.Is(err, domain.ErrAccountAlreadyLinked):
			telegram.SendText(ctx, b, chatID, "❌ That account is already linked to a chat. Type LOGIN to try another.")
		default:
			slog.Error("link chat sender", "chat_id", chatID, "error", err)
			telegram.SendText(ctx, b, chatID, "⚠️ Something went wrong. Please try again.")
		}
		if err := h.setState(ctx, chatID, domain.ChatIdle, ""); err != nil {
			slog.Error("save chat state", "chat_id", chatID, "error", err)
		}
		return
	}

	if err := h.setState(ctx, chatID, domain.ChatIdle, ""); err != nil {
		slog.Error("save chat state", "chat_id", chatID, "error", err)
	}

	delay := config.ChatStepDelay
	h.pacer.Schedule(ctx, chatID, []telegram.Step{
		{Send: func(ctx context.Context) {
			telegram.SendText(ctx, b, chatID, "✅ Account linked! Your chat code is "+code+".")
		}},
		{Delay: delay, Send: func(ctx context.Context) {
			telegram.SendKeyboard(ctx, b, chatID,
				"Here is your dashboard:", telegram.DashboardKeyboard())
		}},
	})
}

func (h *Handler) receiveAnswer(ctx context.Context, b *bot.Bot, chatID int64, submitted string) {
	user, err := h.userService.GetByChatSender(ctx, chatID)
	if err != nil {
		if err := h.setState(ctx, chatID, domain.ChatIdle, ""); err != nil {
			slog.Error("save chat state", "chat_id", chatID, "error", err)
		}
		telegram.SendText(ctx, b, chatID, "❓ Type LOGIN to start.")
		return
	}

	result, err := h.taskService.Answer(ctx, user.ID, domain.ChannelChat, submitted)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveTask) {
			telegram.SendText(ctx, b, chatID, "❓ No task is waiting for an answer. Tap 📋 Tasks to get one.")
		} else {
			slog.Error("answer chat task", "chat_id", chatID, "error", err)
			telegram.SendText(ctx, b, chatID, "⚠️ Something went wrong. Please try again.")
		}
		if err := h.setState(ctx, chatID, domain.ChatIdle, ""); err != nil {
			slog.Error("save chat state", "chat_id", chatID, "error", err)
		}
		return
	}

	if err := h.setState(ctx, chatID, domain.ChatIdle, ""); err != nil {
		slog.Error("save chat state", "chat_id", chatID, "error", err)
	}

	var reply string
	if result.Correct {
		reply = fmt.Sprintf("🎉 Correct! You earned %d point(s). You now have %d points.",
			result.Earned, result.NewPoints)
	} else {
		reply = "😔 Not quite. Tap 📋 Tasks to try another one."
	}

	delay := config.ChatStepDelay
	h.pacer.Schedule(ctx, chatID, []telegram.Step{
		{Send: func(ctx context.Context) {
			telegram.SendText(ctx, b, chatID, reply)
		}},
		{Delay: delay, Send: func(ctx context.Context) {
			telegram.SendKeyboard(ctx, b, chatID,
				"What next?", telegram.DashboardKeyboard())
		}},
	})
}

func (h *Handler) setState(ctx context.Context, chatID int64, state domain.ChatStateKind, payload string) error {
	return h.queries.UpsertChatState(ctx, repository.UpsertChatStateParams{
		SenderID: chatID,
		State:    state,
		Payload:  payload,
	})
}
