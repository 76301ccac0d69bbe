package http

import (
	"sync"
	"time"
)

// minIdleTTL bounds how long a quiet client's window is remembered.
const minIdleTTL = time.Hour

// planQuota counts the requests a client has made in its current window.
type planQuota struct {
	used        int
	windowStart time.Duration
}

// RateLimiter gives each client limit requests per fixed window. Planning
// requests run up to six simulations, so the quota is per client across
// all planning routes.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	idleTTL  time.Duration
	epoch    time.Time
	quotas   map[string]*planQuota
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := newRateLimiter(limit, window, time.Now)
	go rl.evictLoop(max(window, time.Minute))
	return rl
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		limit:   max(limit, 1),
		window:  window,
		idleTTL: max(2*window, minIdleTTL),
		epoch:   now(),
		quotas:  make(map[string]*planQuota),
		now:     now,
		done:    make(chan struct{}),
	}
}

func (r *RateLimiter) evictLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.evictIdle()
		}
	}
}

// evictIdle forgets clients whose window started more than idleTTL ago.
func (r *RateLimiter) evictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.elapsed() - r.idleTTL
	evicted := 0
	for client, q := range r.quotas {
		if q.windowStart < cutoff {
			delete(r.quotas, client)
			evicted++
		}
	}
	return evicted
}

func (r *RateLimiter) elapsed() time.Duration {
	return r.now().Sub(r.epoch)
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Allow records a request from client. A rejected request gets the time
// left until the client's window resets.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := r.elapsed()
	q, ok := r.quotas[client]
	if !ok || at-q.windowStart >= r.window {
		q = &planQuota{windowStart: at}
		r.quotas[client] = q
	}
	if q.used >= r.limit {
		return false, q.windowStart + r.window - at
	}
	q.used++
	return true, 0
}
