package game

import "context"

// Difficulty levels understood by question sources.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question types understood by question sources.
const (
	TypeMultiple = "multiple"
	TypeBoolean  = "boolean"
)

// FetchRequest describes one batch of questions to fetch.
type FetchRequest struct {
	Amount     int
	Category   string
	Difficulty string
	Type       string
}

// QuestionSource supplies a batch of questions for a new game. Start fetches
// exactly once; any error means the session was not touched.
type QuestionSource interface {
	Fetch(ctx context.Context, req FetchRequest) ([]Question, error)
}
