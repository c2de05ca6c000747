package handlers

import (
	"trivia-bot/internal/config"
	"trivia-bot/internal/game"
)

// BotInterface is the slice of the Telegram bot the handlers need, so they
// can be tested against a fake.
type BotInterface interface {
	SendMessage(chatID int64, text string, keyboard interface{}) int
	AnswerCallbackQuery(queryID string, text string, showAlert bool)
}

type HandlerManager struct {
	Config   *config.Config
	Registry *game.SessionRegistry
	Source   game.QuestionSource
}

func NewHandlerManager(cfg *config.Config, registry *game.SessionRegistry, source game.QuestionSource) *HandlerManager {
	return &HandlerManager{
		Config:   cfg,
		Registry: registry,
		Source:   source,
	}
}
