package game

import (
	"sort"
	"sync"
	"time"
)

// JoinResult reports the outcome of a join attempt.
type JoinResult int

const (
	Joined JoinResult = iota
	AlreadyJoined
)

// AnswerResult reports the outcome of an answer submission.
type AnswerResult int

const (
	Correct AnswerResult = iota
	Incorrect
)

// Score is one leaderboard row.
type Score struct {
	Player string
	Points int
}

// GameSession holds one channel's game state. Every method takes the session
// lock; the update dispatcher serializes commands per chat, but nothing else
// in the process is allowed to assume that.
type GameSession struct {
	mu         sync.Mutex
	questions  []Question
	current    int
	scores     map[string]int
	joinOrder  []string
	running    bool
	lastActive time.Time
}

func NewSession() *GameSession {
	return &GameSession{
		scores:     make(map[string]int),
		lastActive: time.Now(),
	}
}

// Join adds a player with a zero score. Joining twice is a no-op.
func (s *GameSession) Join(player string) JoinResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if _, ok := s.scores[player]; ok {
		return AlreadyJoined
	}
	s.scores[player] = 0
	s.joinOrder = append(s.joinOrder, player)
	return Joined
}

// HasPlayer reports whether the player has joined this session.
func (s *GameSession) HasPlayer(player string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.scores[player]
	return ok
}

// Start installs a question batch and marks the game running. Starting again
// mid-game restarts it: progress and scores reset, the joined roster stays.
func (s *GameSession) Start(questions []Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	s.questions = questions
	s.running = true
	s.current = 0
	for player := range s.scores {
		s.scores[player] = 0
	}
}

// IsRunning reports whether Start has been called on this session.
func (s *GameSession) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// IsEnded reports whether every question has been answered. A session that
// never received questions is not ended, no matter the index.
func (s *GameSession) IsEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isEnded()
}

func (s *GameSession) isEnded() bool {
	return len(s.questions) > 0 && s.current >= len(s.questions)
}

// CurrentQuestion returns the question waiting to be answered. Callers must
// check IsEnded first; asking past the end returns ErrNoCurrentQuestion.
func (s *GameSession) CurrentQuestion() (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current >= len(s.questions) {
		return Question{}, ErrNoCurrentQuestion
	}
	return s.questions[s.current], nil
}

// CurrentIndex returns the zero-based index of the current question.
func (s *GameSession) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// QuestionCount returns the size of the installed question batch.
func (s *GameSession) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// SubmitAnswer compares the answer text against the current question. A match
// advances the game and awards the player one point; a miss changes nothing.
func (s *GameSession) SubmitAnswer(player, answer string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if _, ok := s.scores[player]; !ok {
		return Incorrect, ErrPlayerNotJoined
	}
	if s.current >= len(s.questions) {
		return Incorrect, ErrNoCurrentQuestion
	}

	if answer != s.questions[s.current].Answer {
		return Incorrect, nil
	}

	s.current++
	s.scores[player]++
	return Correct, nil
}

// Leaderboard returns every joined player sorted by score, highest first.
// Equal scores keep join order, so the output is deterministic.
func (s *GameSession) Leaderboard() []Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := make([]Score, 0, len(s.joinOrder))
	for _, player := range s.joinOrder {
		board = append(board, Score{Player: player, Points: s.scores[player]})
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Points > board[j].Points
	})
	return board
}

func (s *GameSession) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}
