// Package telegram is the chat gateway: it receives updates from the
// Telegram Bot API and routes them into the conversation machine, the
// statistics service and the report renderer.
package telegram

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fintrack/internal/conversation"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/report"
)

// Stats is the reporting slice of the service layer.
type Stats interface {
	Summary(ctx context.Context, userID int64, period core.Period, now time.Time) (core.PeriodSummary, error)
}

// HistoryStore lists a user's most recent transactions.
type HistoryStore interface {
	Recent(ctx context.Context, userID int64, limit int) ([]core.Transaction, error)
}

type Bot struct {
	api          *tgbotapi.BotAPI
	machine      *conversation.Machine
	stats        Stats
	history      HistoryStore
	renderer     *report.Renderer
	historyLimit int
	logger       *log.Logger
}

func New(token string, machine *conversation.Machine, stats Stats, history HistoryStore, renderer *report.Renderer, historyLimit int, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:          api,
		machine:      machine,
		stats:        stats,
		history:      history,
		renderer:     renderer,
		historyLimit: historyLimit,
		logger:       logger,
	}, nil
}

// Run processes updates until the context ends. Updates are handled one
// at a time; an event is fully dealt with before the next one is taken,
// so no two handlers ever touch the same user's conversation state
// concurrently.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return errors.New("updates channel closed")
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	switch msg.Text {
	case btnAddIncome:
		b.startFlow(chatID, userID, core.Income)
		return
	case btnAddExpense:
		b.startFlow(chatID, userID, core.Expense)
		return
	case btnStats:
		b.sendPeriodPicker(chatID, cbStats, "📊 Pick a period for statistics:")
		return
	case btnReport:
		b.sendPeriodPicker(chatID, cbReport, "📝 Pick a period for the report:")
		return
	case btnHistory:
		b.sendHistory(ctx, chatID, userID)
		return
	case btnHelp:
		b.sendWelcome(chatID, "")
		return
	}

	b.handleFlowInput(ctx, chatID, userID, msg.Text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.sendWelcome(chatID, msg.From.FirstName)
	case "menu":
		b.sendMainMenu(chatID)
	case "add_income":
		b.startFlow(chatID, userID, core.Income)
	case "add_expense":
		b.startFlow(chatID, userID, core.Expense)
	case "stats":
		b.sendPeriodPicker(chatID, cbStats, "📊 Pick a period for statistics:")
	case "report":
		b.sendPeriodPicker(chatID, cbReport, "📝 Pick a period for the report:")
	case "history":
		b.sendHistory(ctx, chatID, userID)
	case "cancel":
		b.machine.Cancel(userID)
		b.sendText(chatID, "Cancelled. Back to the main menu.")
		b.sendMainMenu(chatID)
	default:
		b.sendText(chatID, "Unknown command. Try /menu.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Always answer so the button stops spinning, even on bad payloads.
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			b.logger.Error("Failed to answer callback", log.FieldError, err)
		}
	}()

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	action := parseCallback(cb.Data)
	if !action.valid {
		b.logger.Warn("Unrecognized callback payload", "data", cb.Data)
		return
	}

	if action.category != "" {
		b.selectCategory(chatID, cb.Message.MessageID, userID, action.category)
		return
	}

	b.sendPeriodSummary(ctx, chatID, userID, action.period, action.withChart)
}

func (b *Bot) startFlow(chatID, userID int64, kind core.Kind) {
	categories, err := b.machine.Begin(userID, kind)
	if err != nil {
		b.logger.Error("Failed to start flow", log.FieldUserID, userID, log.FieldError, err)
		b.sendText(chatID, "Something went wrong, please try again.")
		return
	}

	prompt := "📉 Pick an expense category:"
	if kind == core.Income {
		prompt = "📈 Pick an income category:"
	}
	msg := tgbotapi.NewMessage(chatID, prompt)
	msg.ReplyMarkup = categoryKeyboard(kind, categories)
	b.send(msg)
}

func (b *Bot) selectCategory(chatID int64, messageID int, userID int64, category string) {
	if err := b.machine.SelectCategory(userID, category); err != nil {
		switch {
		case errors.Is(err, conversation.ErrNoActiveFlow):
			b.sendText(chatID, "That choice has expired. Start again from the menu.")
		case errors.Is(err, core.ErrUnknownCategory):
			b.sendText(chatID, "Please pick one of the offered categories.")
		default:
			b.logger.Error("Category selection failed", log.FieldUserID, userID, log.FieldError, err)
			b.sendText(chatID, "Something went wrong, please try again.")
		}
		return
	}

	// Replace the keyboard message so the chosen category is pinned in
	// the chat and the buttons disappear.
	edit := tgbotapi.NewEditMessageText(chatID, messageID,
		"📌 Category: "+category+"\n\nEnter the amount:")
	b.send(edit)
}

func (b *Bot) handleFlowInput(ctx context.Context, chatID, userID int64, text string) {
	if b.machine.Phase(userID) == conversation.PhaseAwaitingCategory {
		b.sendText(chatID, "Please pick a category with the buttons above.")
		return
	}

	outcome, err := b.machine.Input(ctx, userID, text)
	switch {
	case errors.Is(err, conversation.ErrNoActiveFlow):
		b.sendMainMenu(chatID)
	case errors.Is(err, core.ErrInvalidAmount):
		b.sendText(chatID, "⚠️ Please enter a valid amount (e.g. 1500 or 99.99)")
	case err != nil:
		// Store failure on commit: the flow state is kept, the user can
		// resend the description to retry.
		b.logger.Error("Commit failed", log.FieldUserID, userID, log.FieldError, err)
		b.sendText(chatID, "⚠️ Could not save your transaction. Please send the description again.")
	case outcome.NeedDescription:
		b.sendText(chatID, "💬 Enter a description (or send '-' to skip):")
	case outcome.Committed != nil:
		b.sendText(chatID, b.renderer.RenderCommitted(*outcome.Committed))
		b.sendMainMenu(chatID)
	}
}

func (b *Bot) sendPeriodSummary(ctx context.Context, chatID, userID int64, period core.Period, withChart bool) {
	summary, err := b.stats.Summary(ctx, userID, period, time.Now())
	if err != nil {
		b.logger.Error("Failed to compute summary", log.FieldUserID, userID, log.FieldPeriod, period, log.FieldError, err)
		b.sendText(chatID, "⚠️ Could not load your statistics, please try again later.")
		return
	}

	text := b.renderer.RenderText(summary, period, time.Now())
	if !withChart {
		b.sendText(chatID, text)
		return
	}

	chart, err := b.renderer.RenderChart(summary, period)
	if errors.Is(err, report.ErrNoChartData) {
		b.sendText(chatID, text+"\n\n⚠️ Not enough data for charts")
		return
	}
	if err != nil {
		b.logger.Error("Failed to render chart", log.FieldUserID, userID, log.FieldError, err)
		b.sendText(chatID, text)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "statistics.pdf",
		Bytes: chart,
	})
	doc.Caption = text
	b.send(doc)
}

func (b *Bot) sendHistory(ctx context.Context, chatID, userID int64) {
	transactions, err := b.history.Recent(ctx, userID, b.historyLimit)
	if err != nil {
		b.logger.Error("Failed to load history", log.FieldUserID, userID, log.FieldError, err)
		b.sendText(chatID, "⚠️ Could not load your history, please try again later.")
		return
	}
	b.sendText(chatID, b.renderer.RenderHistory(transactions))
}

func (b *Bot) sendWelcome(chatID int64, firstName string) {
	greeting := "👋 Hi!"
	if firstName != "" {
		greeting = "👋 Hi, " + firstName + "!"
	}
	b.sendMainMenu(chatID)
	b.sendText(chatID, greeting+"\n\n"+
		"I track your money. Use the buttons below or the commands:\n\n"+
		"/add_income - record income\n"+
		"/add_expense - record an expense\n"+
		"/stats - statistics with a chart\n"+
		"/report - text report\n"+
		"/history - recent transactions\n"+
		"/cancel - abandon the current entry\n"+
		"/menu - main menu")
}

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "📱 Main menu:\nPick an action:")
	msg.ReplyMarkup = mainMenuKeyboard()
	b.send(msg)
}

func (b *Bot) sendPeriodPicker(chatID int64, prefix, prompt string) {
	msg := tgbotapi.NewMessage(chatID, prompt)
	msg.ReplyMarkup = periodKeyboard(prefix)
	b.send(msg)
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("Failed to send message", log.FieldError, err)
	}
}
