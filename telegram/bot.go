package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"trivia-bot/internal/config"
	"trivia-bot/internal/handlers"
	"trivia-bot/internal/middleware"
	"trivia-bot/pkg/logger"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.Config
	handlers *handlers.HandlerManager
	limiter  *middleware.RateLimiter

	// Updates are hashed onto workers by chat ID so all commands for one
	// chat are processed in order, one at a time.
	workerChans []chan tgbotapi.Update
}

func InitBot(cfg *config.Config, handlerMgr *handlers.HandlerManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)

	bot := &Bot{
		api:         api,
		config:      cfg,
		handlers:    handlerMgr,
		limiter:     middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerChat, time.Minute),
		workerChans: make([]chan tgbotapi.Update, cfg.Workers),
	}

	for i := range bot.workerChans {
		bot.workerChans[i] = make(chan tgbotapi.Update, 100)
		go bot.startWorker(bot.workerChans[i])
	}

	go bot.startUpdateListener()

	return bot, nil
}

func (b *Bot) startUpdateListener() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for {
		logger.Info("Starting update listener...")
		updates := b.api.GetUpdatesChan(u)

		for update := range updates {
			chatID := updateChatID(update)
			if chatID == 0 {
				continue
			}

			workerIdx := chatID % int64(len(b.workerChans))
			if workerIdx < 0 {
				workerIdx = -workerIdx
			}
			b.workerChans[workerIdx] <- update
		}

		logger.Warn("Update channel closed. Restarting in 5 seconds...")
		time.Sleep(5 * time.Second)
	}
}

func (b *Bot) startWorker(ch chan tgbotapi.Update) {
	for update := range ch {
		b.handleUpdate(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in handleUpdate", "error", r)
		}
	}()

	if update.Message != nil {
		b.handleMessage(update.Message)
	} else if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

func updateChatID(update tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.From == nil || !message.IsCommand() {
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	logger.Debug("Received command",
		"chat_id", chatID,
		"user_id", userID,
		"command", message.Command(),
	)

	if !b.limiter.AllowUser(userID) || !b.limiter.AllowChat(chatID) {
		logger.Warn("Rate limit exceeded", "chat_id", chatID, "user_id", userID)
		return
	}

	player := playerName(message.From)

	switch message.Command() {
	case "join":
		b.handlers.HandleJoin(chatID, player, b)

	case "start":
		opts := parseStartOptions(message.CommandArguments())
		b.handlers.HandleStart(context.Background(), chatID, player, opts, b)

	case "answer":
		answer := strings.TrimSpace(message.CommandArguments())
		if answer == "" {
			b.sendMessage(chatID, "✍️ Send your answer with the command, e.g. /answer True", nil)
			return
		}
		b.handlers.HandleAnswer(chatID, player, answer, b)

	case "leaderboard":
		b.handlers.HandleLeaderboard(chatID, b)

	case "stop":
		b.handlers.HandleStop(chatID, player, b)

	case "help":
		b.sendMessage(chatID, handlers.MsgHelp, nil)
	}
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	userID := query.From.ID

	if !b.limiter.AllowUser(userID) || !b.limiter.AllowChat(chatID) {
		logger.Warn("Rate limit exceeded", "chat_id", chatID, "user_id", userID)
		b.AnswerCallbackQuery(query.ID, "Slow down a little!", false)
		return
	}

	questionIdx, choiceIdx, ok := parseAnswerCallback(query.Data)
	if !ok {
		b.AnswerCallbackQuery(query.ID, "", false)
		return
	}

	player := playerName(query.From)
	b.handlers.HandleAnswerCallback(chatID, player, query.ID, questionIdx, choiceIdx, b)
}

// parseAnswerCallback decodes "ans_<questionIdx>_<choiceIdx>" button data.
func parseAnswerCallback(data string) (questionIdx, choiceIdx int, ok bool) {
	if !strings.HasPrefix(data, "ans_") {
		return 0, 0, false
	}

	parts := strings.Split(strings.TrimPrefix(data, "ans_"), "_")
	if len(parts) != 2 {
		return 0, 0, false
	}

	questionIdx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	choiceIdx, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return questionIdx, choiceIdx, true
}

func parseStartOptions(args string) handlers.StartOptions {
	var opts handlers.StartOptions

	for i, field := range strings.Fields(args) {
		switch i {
		case 0:
			if amount, err := strconv.Atoi(field); err == nil {
				opts.Amount = amount
			}
		case 1:
			opts.Difficulty = strings.ToLower(field)
		case 2:
			opts.Category = strings.ToLower(field)
		}
	}

	return opts
}

func playerName(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}

func (b *Bot) sendMessage(chatID int64, text string, keyboard interface{}) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	switch kb := keyboard.(type) {
	case tgbotapi.ReplyKeyboardMarkup:
		msg.ReplyMarkup = kb
	case tgbotapi.InlineKeyboardMarkup:
		msg.ReplyMarkup = kb
	case tgbotapi.ReplyKeyboardRemove:
		msg.ReplyMarkup = kb
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		sentMsg, err := b.api.Send(msg)
		if err != nil {
			logger.Error("Failed to send message", "error", err, "chat_id", chatID, "attempt", i+1)

			// Wait and retry on transient network errors
			if strings.Contains(err.Error(), "connection reset") ||
				strings.Contains(err.Error(), "timeout") ||
				strings.Contains(err.Error(), "network is unreachable") {
				time.Sleep(time.Duration(i+1) * time.Second)
				continue
			}
			return 0
		}
		return sentMsg.MessageID
	}
	return 0
}

// SendMessage implements handlers.BotInterface.
func (b *Bot) SendMessage(chatID int64, text string, keyboard interface{}) int {
	return b.sendMessage(chatID, text, keyboard)
}

// AnswerCallbackQuery implements handlers.BotInterface.
func (b *Bot) AnswerCallbackQuery(queryID string, text string, showAlert bool) {
	callback := tgbotapi.NewCallback(queryID, text)
	callback.ShowAlert = showAlert
	if _, err := b.api.Request(callback); err != nil {
		logger.Error("Failed to answer callback query", "error", err, "query_id", queryID)
	}
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	b.limiter.Stop()
	logger.Info("Bot stopped receiving updates")
}
