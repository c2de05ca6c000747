package handlers

import (
	"strings"
	"testing"

	"trivia-bot/internal/game"
)

func TestRenderQuestion_EscapesHTML(t *testing.T) {
	q := game.Question{
		Text:    "Is 1 < 2 & 3 > 2?",
		Choices: []string{"True", "False"},
		Answer:  "True",
	}

	got := renderQuestion(q, 1, 5)
	if !strings.Contains(got, "Question 1/5") {
		t.Errorf("renderQuestion() = %q, want question counter", got)
	}
	if !strings.Contains(got, "Is 1 &lt; 2 &amp; 3 &gt; 2?") {
		t.Errorf("renderQuestion() = %q, want escaped text", got)
	}
	if strings.Contains(got, "1 < 2") {
		t.Errorf("renderQuestion() = %q, contains unescaped markup", got)
	}
}

func TestRenderLeaderboard(t *testing.T) {
	board := []game.Score{{Player: "alice", Points: 2}, {Player: "bob", Points: 1}}

	got := renderLeaderboard(board, false)
	if !strings.Contains(got, "LEADERBOARD") || strings.Contains(got, "FINAL") {
		t.Errorf("renderLeaderboard(final=false) = %q", got)
	}
	if !strings.Contains(got, "alice - 2") || !strings.Contains(got, "bob - 1") {
		t.Errorf("renderLeaderboard() = %q, missing scores", got)
	}

	final := renderLeaderboard(board, true)
	if !strings.Contains(final, "FINAL LEADERBOARD") {
		t.Errorf("renderLeaderboard(final=true) = %q", final)
	}
}

func TestRenderLeaderboard_Empty(t *testing.T) {
	got := renderLeaderboard(nil, false)
	if !strings.Contains(got, "Nobody has joined yet") {
		t.Errorf("renderLeaderboard(nil) = %q", got)
	}
}

func TestAnswerKeyboard(t *testing.T) {
	q := game.Question{
		Text:    "Q",
		Choices: []string{"A", "B", "C"},
		Answer:  "A",
	}

	kb := AnswerKeyboard(q, 3)
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("keyboard has %d rows, want 2", len(kb.InlineKeyboard))
	}
	if len(kb.InlineKeyboard[0]) != 2 || len(kb.InlineKeyboard[1]) != 1 {
		t.Errorf("row sizes = %d,%d, want 2,1", len(kb.InlineKeyboard[0]), len(kb.InlineKeyboard[1]))
	}

	button := kb.InlineKeyboard[1][0]
	if button.Text != "C" {
		t.Errorf("last button text = %q, want C", button.Text)
	}
	if button.CallbackData == nil || *button.CallbackData != "ans_3_2" {
		t.Errorf("last button data = %v, want ans_3_2", button.CallbackData)
	}
}
