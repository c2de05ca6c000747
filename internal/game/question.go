package game

// Question is a single trivia question. It is built once by a question
// source and never mutated afterwards; the session that holds it owns it.
type Question struct {
	Text    string
	Choices []string
	Answer  string
}
