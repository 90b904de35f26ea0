// Package ratelimit provides per-client rate limiting using the token
// bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket for one client. Tokens refill at a steady rate
// up to the burst capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func (b *bucket) take(now time.Time) (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
	b.lastAccess = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true, 0
	}

	wait := time.Duration((1.0 - b.tokens) / b.refillRate * float64(time.Second))
	return false, wait
}

// Limiter hands out one bucket per client id. The zero-value Config
// disables limiting entirely.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  Config
	stop    chan struct{}
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Limit is the sustained number of requests per window.
	Limit int
	// Window is the refill period for Limit tokens.
	Window time.Duration
	// Burst caps momentary excess; zero means Burst = Limit.
	Burst int
	// CleanupInterval controls how often idle buckets are dropped.
	CleanupInterval time.Duration
}

// DefaultConfig allows 300 requests per minute per client.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Limit:           300,
		Window:          time.Minute,
		Burst:           60,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop.
func NewLimiter(config Config) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Allow reports whether a request from the client may proceed, and if not,
// how long until the next token is available.
func (l *Limiter) Allow(clientID string) (bool, time.Duration) {
	if !l.config.Enabled || l.config.Limit <= 0 {
		return true, 0
	}

	burst := l.config.Burst
	if burst <= 0 {
		burst = l.config.Limit
	}

	l.mu.Lock()
	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{
			capacity:   float64(burst),
			refillRate: float64(l.config.Limit) / l.config.Window.Seconds(),
			tokens:     float64(burst),
			lastRefill: time.Now(),
		}
		l.buckets[clientID] = b
	}
	l.mu.Unlock()

	return b.take(time.Now())
}

// Stop terminates the cleanup loop.
func (l *Limiter) Stop() {
	close(l.stop)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.dropIdle(time.Now().Add(-time.Hour))
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) dropIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, b := range l.buckets {
		b.mu.Lock()
		idle := b.lastAccess.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(l.buckets, id)
		}
	}
}
