package game

import (
	"sync"
	"time"
)

// SessionRegistry maps Telegram chat IDs to their game sessions. At most one
// live session exists per chat. The registry is constructed once at startup
// and handed to the command handlers.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[int64]*GameSession

	ttl  time.Duration
	done chan struct{}
}

// NewSessionRegistry creates an empty registry. Sessions idle longer than ttl
// are removed by a background sweep; a zero ttl disables the sweep.
func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	r := &SessionRegistry{
		sessions: make(map[int64]*GameSession),
		ttl:      ttl,
		done:     make(chan struct{}),
	}

	if ttl > 0 {
		go r.sweep()
	}

	return r
}

// GetOrCreate returns the chat's live session, creating one if the chat has
// none. An ended session counts as absent and is replaced with a fresh
// object, so stale scores can never leak into a new game.
func (r *SessionRegistry) GetOrCreate(chatID int64) (*GameSession, error) {
	if chatID == 0 {
		return nil, ErrInvalidChannel
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[chatID]
	if ok && !session.IsEnded() {
		return session, nil
	}

	session = NewSession()
	r.sessions[chatID] = session
	return session, nil
}

// Get returns the chat's live session, or ErrNoGame if there is none. Ended
// sessions are dropped from the map on sight.
func (r *SessionRegistry) Get(chatID int64) (*GameSession, error) {
	if chatID == 0 {
		return nil, ErrInvalidChannel
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[chatID]
	if !ok {
		return nil, ErrNoGame
	}
	if session.IsEnded() {
		delete(r.sessions, chatID)
		return nil, ErrNoGame
	}
	return session, nil
}

// Remove drops the chat's session, ended or not.
func (r *SessionRegistry) Remove(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatID)
}

// Len returns the number of stored sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Stop terminates the background sweep.
func (r *SessionRegistry) Stop() {
	close(r.done)
}

func (r *SessionRegistry) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.removeStale(time.Now())
		case <-r.done:
			return
		}
	}
}

func (r *SessionRegistry) removeStale(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for chatID, session := range r.sessions {
		if session.IsEnded() || session.idleSince(now) > r.ttl {
			delete(r.sessions, chatID)
		}
	}
}
