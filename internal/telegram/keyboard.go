package telegram

import (
	"github.com/go-telegram/bot/models"
)

// Callback data values for the dashboard keyboard.
const (
	CallbackBalance = "balance"
	CallbackTasks   = "tasks"
	CallbackInfo    = "info"
)

// InlineButton creates a single inline keyboard button.
func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// ButtonRow creates a row of inline buttons.
func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// InlineKeyboard creates an inline keyboard from rows of buttons.
func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// DashboardKeyboard is the main menu shown to linked accounts.
func DashboardKeyboard() *models.InlineKeyboardMarkup {
	return InlineKeyboard(
		ButtonRow(
			InlineButton("💰 Balance", CallbackBalance),
			InlineButton("📋 Tasks", CallbackTasks),
		),
		ButtonRow(
			InlineButton("ℹ️ Info", CallbackInfo),
		),
	)
}
