package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"trivia-bot/internal/game"
)

// User-facing messages. Everything is sent with HTML parse mode, so dynamic
// text gets escaped before interpolation.
const (
	MsgJoinFirst      = "🙋 You haven't joined yet! Send /join first."
	MsgNoGame         = "❌ No game is currently running! Send /join to open one."
	MsgNotStarted     = "⏳ The game hasn't started yet. Send /start to begin."
	MsgStartFailed    = "⚠️ Could not start the game, please try again later."
	MsgNoResults      = "⚠️ Not enough questions for those filters, try different ones."
	MsgBadCategory    = "⚠️ Unknown category. Send /help for the list."
	MsgQuestionClosed = "That question is already closed."

	MsgHelp = `🎮 <b>Trivia Bot</b>

/join — join this chat's game
/start [amount] [difficulty] [category] — start it
/answer &lt;text&gt; — answer the current question
/leaderboard — show the standings
/stop — abandon the game

Difficulties: easy, medium, hard.
Categories: general, books, film, music, science, computers, math, sports, geography, history, animals.`
)

func renderJoin(player string, already bool) string {
	name := escape(player)
	if already {
		return fmt.Sprintf("🔁 %s, you already joined the game! To start it, send /start", name)
	}
	return fmt.Sprintf("✅ %s joined the game! To start it, send /start", name)
}

func renderQuestion(q game.Question, number, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "❓ <b>Question %d/%d</b>\n\n", number, total)
	fmt.Fprintf(&b, "<b>%s</b>\n\n", escape(q.Text))
	fmt.Fprintf(&b, "Choices: %s", escape(strings.Join(q.Choices, ", ")))
	return b.String()
}

func renderAnswer(player string, result game.AnswerResult) string {
	if result == game.Correct {
		return fmt.Sprintf("🎉 %s got the question right!", escape(player))
	}
	return fmt.Sprintf("❌ %s got the question wrong!", escape(player))
}

func renderLeaderboard(board []game.Score, final bool) string {
	var b strings.Builder
	if final {
		b.WriteString("🏁 <b>FINAL LEADERBOARD</b>\n\n")
	} else {
		b.WriteString("🏆 <b>LEADERBOARD</b>\n\n")
	}

	if len(board) == 0 {
		b.WriteString("Nobody has joined yet.")
		return b.String()
	}

	for _, score := range board {
		fmt.Fprintf(&b, "%s - %d\n", escape(score.Player), score.Points)
	}
	return strings.TrimRight(b.String(), "\n")
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}
