package game

import (
	"errors"
	"testing"
	"time"
)

func TestSessionRegistry_GetOrCreate(t *testing.T) {
	r := NewSessionRegistry(0)

	first, err := r.GetOrCreate(42)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	second, err := r.GetOrCreate(42)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if first != second {
		t.Error("GetOrCreate() created a second session for the same channel")
	}

	other, err := r.GetOrCreate(43)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if other == first {
		t.Error("GetOrCreate() shared a session across channels")
	}
}

func TestSessionRegistry_Get_NoGame(t *testing.T) {
	r := NewSessionRegistry(0)

	_, err := r.Get(42)
	if !errors.Is(err, ErrNoGame) {
		t.Errorf("Get() error = %v, want ErrNoGame", err)
	}
}

func TestSessionRegistry_InvalidChannel(t *testing.T) {
	r := NewSessionRegistry(0)

	if _, err := r.Get(0); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("Get(0) error = %v, want ErrInvalidChannel", err)
	}
	if _, err := r.GetOrCreate(0); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("GetOrCreate(0) error = %v, want ErrInvalidChannel", err)
	}
}

func TestSessionRegistry_EndedSessionIsAbsent(t *testing.T) {
	r := NewSessionRegistry(0)

	session, err := r.GetOrCreate(42)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	session.Join("alice")
	session.Start([]Question{{Text: "Q1", Choices: []string{"True", "False"}, Answer: "True"}})
	if _, err := session.SubmitAnswer("alice", "True"); err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if !session.IsEnded() {
		t.Fatal("session not ended after final answer")
	}

	if _, err := r.Get(42); !errors.Is(err, ErrNoGame) {
		t.Errorf("Get() after game end: error = %v, want ErrNoGame", err)
	}

	fresh, err := r.GetOrCreate(42)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if fresh == session {
		t.Error("GetOrCreate() resurrected an ended session")
	}
	if len(fresh.Leaderboard()) != 0 {
		t.Error("fresh session carries stale scores")
	}
}

func TestSessionRegistry_Remove(t *testing.T) {
	r := NewSessionRegistry(0)

	if _, err := r.GetOrCreate(42); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	r.Remove(42)

	if _, err := r.Get(42); !errors.Is(err, ErrNoGame) {
		t.Errorf("Get() after Remove: error = %v, want ErrNoGame", err)
	}
	if got := r.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestSessionRegistry_RemoveStale(t *testing.T) {
	r := NewSessionRegistry(time.Hour)
	defer r.Stop()

	if _, err := r.GetOrCreate(42); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	// Not yet past the TTL.
	r.removeStale(time.Now().Add(30 * time.Minute))
	if got := r.Len(); got != 1 {
		t.Fatalf("Len() = %d after early sweep, want 1", got)
	}

	r.removeStale(time.Now().Add(2 * time.Hour))
	if got := r.Len(); got != 0 {
		t.Errorf("Len() = %d after stale sweep, want 0", got)
	}
}

func TestSessionRegistry_RemoveStale_DropsEnded(t *testing.T) {
	r := NewSessionRegistry(time.Hour)
	defer r.Stop()

	session, err := r.GetOrCreate(42)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	session.Join("alice")
	session.Start([]Question{{Text: "Q1", Choices: []string{"True", "False"}, Answer: "True"}})
	if _, err := session.SubmitAnswer("alice", "True"); err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}

	// Ended sessions go on the next sweep even when fresh.
	r.removeStale(time.Now())
	if got := r.Len(); got != 0 {
		t.Errorf("Len() = %d after sweep of ended session, want 0", got)
	}
}
