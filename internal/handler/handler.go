package handler

import (
	"github.com/go-telegram/bot"

	"github.com/ifund-app/ifund/internal/repository"
	"github.com/ifund-app/ifund/internal/service"
	"github.com/ifund-app/ifund/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	userService *service.UserService
	taskService *service.TaskService
	queries     *repository.Queries
	pacer       *telegram.Pacer
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	UserService *service.UserService
	TaskService *service.TaskService
	Queries     *repository.Queries
	Pacer       *telegram.Pacer
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		userService: deps.UserService,
		taskService: deps.TaskService,
		queries:     deps.Queries,
		pacer:       deps.Pacer,
	}
}

// Register wires commands and callback handlers into the bot.
func (h *Handler) Register() {
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)

	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackBalance, bot.MatchTypeExact, h.handleBalance)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackTasks, bot.MatchTypeExact, h.handleTasks)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackInfo, bot.MatchTypeExact, h.handleInfo)
}
