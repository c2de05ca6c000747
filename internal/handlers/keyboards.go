package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"trivia-bot/internal/game"
)

// AnswerKeyboard builds one inline button per choice, two per row. Callback
// data embeds the question index so late taps can be told apart from answers
// to the current question.
func AnswerKeyboard(q game.Question, questionIdx int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for i, choice := range q.Choices {
		data := fmt.Sprintf("ans_%d_%d", questionIdx, i)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(choice, data))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
