package middleware

import (
	"sync"
	"time"
)

// RateLimiter is a fixed-window in-memory limiter for inbound updates,
// counted per user and per chat.
type RateLimiter struct {
	userLimits map[int64]*window
	chatLimits map[int64]*window
	mu         sync.Mutex

	userMaxRequests int
	chatMaxRequests int
	windowSize      time.Duration

	done chan struct{}
}

type window struct {
	requests  int
	resetTime time.Time
}

func NewRateLimiter(userMaxRequests, chatMaxRequests int, windowSize time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[int64]*window),
		chatLimits:      make(map[int64]*window),
		userMaxRequests: userMaxRequests,
		chatMaxRequests: chatMaxRequests,
		windowSize:      windowSize,
		done:            make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// AllowUser reports whether the user is under their request budget and
// counts the request.
func (rl *RateLimiter) AllowUser(userID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return allow(rl.userLimits, userID, rl.userMaxRequests, rl.windowSize)
}

// AllowChat reports whether the chat is under its request budget and counts
// the request.
func (rl *RateLimiter) AllowChat(chatID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return allow(rl.chatLimits, chatID, rl.chatMaxRequests, rl.windowSize)
}

func allow(limits map[int64]*window, id int64, limit int, size time.Duration) bool {
	now := time.Now()

	w, exists := limits[id]
	if !exists || now.After(w.resetTime) {
		limits[id] = &window{requests: 1, resetTime: now.Add(size)}
		return true
	}

	if w.requests >= limit {
		return false
	}

	w.requests++
	return true
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// Reset clears all counters (useful for testing).
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.userLimits = make(map[int64]*window)
	rl.chatLimits = make(map[int64]*window)
}

// cleanup periodically drops expired windows.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for id, w := range rl.userLimits {
				if now.After(w.resetTime) {
					delete(rl.userLimits, id)
				}
			}
			for id, w := range rl.chatLimits {
				if now.After(w.resetTime) {
					delete(rl.chatLimits, id)
				}
			}
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}
