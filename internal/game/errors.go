package game

import "errors"

var (
	// ErrInvalidChannel is returned when a registry lookup is given a zero chat ID.
	ErrInvalidChannel = errors.New("invalid channel id")
	// ErrNoGame is returned when no active session exists for a channel.
	ErrNoGame = errors.New("no game running in this channel")
	// ErrPlayerNotJoined is returned when a player acts before joining.
	ErrPlayerNotJoined = errors.New("player has not joined the game")
	// ErrNoCurrentQuestion indicates the question list is exhausted or empty.
	// Callers are expected to check IsEnded first; seeing this is a bug.
	ErrNoCurrentQuestion = errors.New("no current question")
)
