// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// clientWindow holds the admission times of one client that still fall
// inside the limiter window, oldest first.
type clientWindow struct {
	mu   sync.Mutex
	hits []time.Time
}

// admit drops hits at or before cutoff and records now if fewer than limit
// remain. On refusal it reports the wait until the oldest hit expires.
func (w *clientWindow) admit(now, cutoff time.Time, limit int) (bool, time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.expire(cutoff)
	if len(w.hits) >= limit {
		return false, w.hits[0].Sub(cutoff)
	}
	w.hits = append(w.hits, now)
	return true, 0
}

// idle reports whether the client has no hits after cutoff.
func (w *clientWindow) idle(cutoff time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.expire(cutoff)
	return len(w.hits) == 0
}

func (w *clientWindow) expire(cutoff time.Time) {
	n := 0
	for n < len(w.hits) && !w.hits[n].After(cutoff) {
		n++
	}
	w.hits = w.hits[n:]
}

// RateLimiter caps how many classifier-backed requests a client IP may make
// per sliding window. Comment submission and ad-hoc moderation both pay for a
// classification, so those are the routes it wraps.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	now     func() time.Time
	stopCh  chan struct{}
	stopped sync.Once
}

// NewRateLimiter admits limit requests per client within any window-long
// span. Idle clients are swept in the background at an interval of the
// window, but never more often than once a minute.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go rl.sweep(max(window, time.Minute))
	return rl
}

// Stop ends the background sweep. Calling it again is a no-op.
func (rl *RateLimiter) Stop() {
	rl.stopped.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// windowFor returns the tracking state for key, creating it on first sight.
func (rl *RateLimiter) windowFor(key string) *clientWindow {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.clients[key]
	if !ok {
		w = &clientWindow{}
		rl.clients[key] = w
	}
	return w
}

// allow admits or refuses one request from key. A refusal carries the time
// until the client may try again.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.now()
	return rl.windowFor(key).admit(now, now.Add(-rl.window), rl.limit)
}

// cleanup forgets clients whose every hit has left the window.
func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.clients {
		if w.idle(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// Middleware refuses over-limit requests with 429 and a Retry-After header
// rounded up to whole seconds.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, retry := rl.allow(ip)
		if !ok {
			secs := max(int(math.Ceil(retry.Seconds())), 1)
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path, "retry_after", secs)
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the leftmost X-Forwarded-For entry, then X-Real-IP, then
// the connection's host.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
