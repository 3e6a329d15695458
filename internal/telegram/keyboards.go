package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fintrack/internal/core"
)

// Main menu button labels; free-text messages matching one of these are
// routed like the corresponding command.
const (
	btnAddIncome  = "➕ Add income"
	btnAddExpense = "➖ Add expense"
	btnStats      = "📊 Statistics"
	btnReport     = "📝 Report"
	btnHistory    = "📋 History"
	btnHelp       = "ℹ️ Help"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddIncome),
			tgbotapi.NewKeyboardButton(btnAddExpense),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStats),
			tgbotapi.NewKeyboardButton(btnReport),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnHistory),
			tgbotapi.NewKeyboardButton(btnHelp),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// categoryKeyboard lays the options out two per row, each carrying
// "<kind>_<category>" callback data.
func categoryKeyboard(kind core.Kind, categories []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(categories); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(categories[i], string(kind)+"_"+categories[i]),
		}
		if i+1 < len(categories) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(categories[i+1], string(kind)+"_"+categories[i+1]))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func periodKeyboard(prefix string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Day", prefix+"_day"),
			tgbotapi.NewInlineKeyboardButtonData("📆 Week", prefix+"_week"),
			tgbotapi.NewInlineKeyboardButtonData("🗓 Month", prefix+"_month"),
		),
	)
}
