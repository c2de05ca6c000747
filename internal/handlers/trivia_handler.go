package handlers

import (
	"context"
	"errors"

	"trivia-bot/internal/game"
	"trivia-bot/internal/security"
	apperrors "trivia-bot/pkg/errors"
	"trivia-bot/pkg/logger"
)

// StartOptions are the optional arguments of the /start command.
type StartOptions struct {
	Amount     int
	Difficulty string
	Category   string
}

// HandleJoin adds the player to the chat's game, creating the session if the
// chat has none yet.
func (h *HandlerManager) HandleJoin(chatID int64, player string, bot BotInterface) {
	session, err := h.Registry.GetOrCreate(chatID)
	if err != nil {
		logger.Error("Failed to resolve session", "chat_id", chatID, "error", err)
		return
	}

	switch session.Join(player) {
	case game.Joined:
		bot.SendMessage(chatID, renderJoin(player, false), nil)
	case game.AlreadyJoined:
		bot.SendMessage(chatID, renderJoin(player, true), nil)
	}
}

// HandleStart fetches a question batch and begins the chat's game. The fetch
// happens before any session mutation, so a failed fetch leaves the game
// exactly as it was.
func (h *HandlerManager) HandleStart(ctx context.Context, chatID int64, player string, opts StartOptions, bot BotInterface) {
	session, err := h.Registry.Get(chatID)
	if err != nil {
		bot.SendMessage(chatID, MsgJoinFirst, nil)
		return
	}
	if !session.HasPlayer(player) {
		bot.SendMessage(chatID, MsgJoinFirst, nil)
		return
	}

	req := h.fetchRequest(opts)
	ctx, cancel := context.WithTimeout(ctx, h.Config.GetFetchTimeout())
	defer cancel()

	questions, err := h.Source.Fetch(ctx, req)
	if err != nil {
		logger.Error("Failed to fetch questions", "chat_id", chatID, "error", err)
		bot.SendMessage(chatID, startFailureMessage(err), nil)
		return
	}

	session.Start(questions)
	logger.Info("Game started",
		"chat_id", chatID,
		"player", player,
		"amount", len(questions),
		"category", req.Category,
		"difficulty", req.Difficulty,
	)

	h.sendCurrentQuestion(chatID, session, bot)
}

// HandleAnswer submits answer text for the chat's current question.
func (h *HandlerManager) HandleAnswer(chatID int64, player, answer string, bot BotInterface) {
	session, err := h.Registry.Get(chatID)
	if err != nil {
		bot.SendMessage(chatID, MsgNoGame, nil)
		return
	}
	if !session.IsRunning() {
		bot.SendMessage(chatID, MsgNotStarted, nil)
		return
	}

	answer = security.SanitizeInput(answer)

	result, err := session.SubmitAnswer(player, answer)
	switch {
	case errors.Is(err, game.ErrPlayerNotJoined):
		bot.SendMessage(chatID, MsgJoinFirst, nil)
		return
	case err != nil:
		logger.Error("Answer rejected", "chat_id", chatID, "player", player, "error", err)
		return
	}

	bot.SendMessage(chatID, renderAnswer(player, result), nil)

	if result == game.Correct {
		h.sendCurrentQuestion(chatID, session, bot)
	}
}

// HandleAnswerCallback resolves an inline-keyboard answer button. Buttons
// carry the question index they were made for; taps on an already answered
// question are rejected instead of counting against the current one.
func (h *HandlerManager) HandleAnswerCallback(chatID int64, player, queryID string, questionIdx, choiceIdx int, bot BotInterface) {
	session, err := h.Registry.Get(chatID)
	if err != nil {
		bot.AnswerCallbackQuery(queryID, MsgNoGame, false)
		return
	}
	if session.CurrentIndex() != questionIdx {
		bot.AnswerCallbackQuery(queryID, MsgQuestionClosed, false)
		return
	}

	question, err := session.CurrentQuestion()
	if err != nil || choiceIdx < 0 || choiceIdx >= len(question.Choices) {
		bot.AnswerCallbackQuery(queryID, MsgQuestionClosed, false)
		return
	}

	bot.AnswerCallbackQuery(queryID, "", false)
	h.HandleAnswer(chatID, player, question.Choices[choiceIdx], bot)
}

// HandleLeaderboard shows the chat's current standings.
func (h *HandlerManager) HandleLeaderboard(chatID int64, bot BotInterface) {
	session, err := h.Registry.Get(chatID)
	if err != nil {
		bot.SendMessage(chatID, MsgNoGame, nil)
		return
	}

	bot.SendMessage(chatID, renderLeaderboard(session.Leaderboard(), false), nil)
}

// HandleStop abandons the chat's game and shows the standings one last time.
func (h *HandlerManager) HandleStop(chatID int64, player string, bot BotInterface) {
	session, err := h.Registry.Get(chatID)
	if err != nil {
		bot.SendMessage(chatID, MsgNoGame, nil)
		return
	}
	if !session.HasPlayer(player) {
		bot.SendMessage(chatID, MsgJoinFirst, nil)
		return
	}

	h.Registry.Remove(chatID)
	logger.Info("Game stopped", "chat_id", chatID, "player", player)
	bot.SendMessage(chatID, renderLeaderboard(session.Leaderboard(), true), nil)
}

// sendCurrentQuestion shows the question waiting to be answered, or the
// final leaderboard when the batch is exhausted.
func (h *HandlerManager) sendCurrentQuestion(chatID int64, session *game.GameSession, bot BotInterface) {
	if session.IsEnded() {
		bot.SendMessage(chatID, renderLeaderboard(session.Leaderboard(), true), nil)
		return
	}

	question, err := session.CurrentQuestion()
	if err != nil {
		logger.Error("No current question for running game", "chat_id", chatID, "error", err)
		return
	}

	text := renderQuestion(question, session.CurrentIndex()+1, session.QuestionCount())
	bot.SendMessage(chatID, text, AnswerKeyboard(question, session.CurrentIndex()))
}

func (h *HandlerManager) fetchRequest(opts StartOptions) game.FetchRequest {
	req := game.FetchRequest{
		Amount:     opts.Amount,
		Difficulty: opts.Difficulty,
		Category:   opts.Category,
	}

	if req.Amount < 1 {
		req.Amount = h.Config.DefaultAmount
	}
	if req.Amount > h.Config.MaxAmount {
		req.Amount = h.Config.MaxAmount
	}
	switch req.Difficulty {
	case game.DifficultyEasy, game.DifficultyMedium, game.DifficultyHard:
	default:
		req.Difficulty = h.Config.DefaultDifficulty
	}
	if req.Category == "" {
		req.Category = h.Config.DefaultCategory
	}

	return req
}

func startFailureMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrCodeNoResults:
			return MsgNoResults
		case apperrors.ErrCodeValidation:
			return MsgBadCategory
		}
	}
	return MsgStartFailed
}
