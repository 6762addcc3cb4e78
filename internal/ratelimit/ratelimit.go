// Package ratelimit provides a keyed rate limiter using the token bucket
// algorithm. Keys are typically client IPs, so entries are evicted after a
// period of inactivity to keep the map bounded.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// cleanupInterval controls how often idle entries are scanned for eviction.
const cleanupInterval = 5 * time.Minute

// idleTTL is how long a key may go unused before its limiter is evicted.
const idleTTL = 15 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter manages per-key rate limiting.
// Each unique key gets its own independent token bucket.
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed rate limiter.
// rps: requests per second allowed per key.
// burst: maximum burst size (tokens available immediately).
func New(rps float64, burst int) *KeyedLimiter {
	kl := &KeyedLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go kl.cleanupLoop()

	return kl
}

// Allow reports whether a request for the given key should be allowed.
// Returns immediately without blocking. Use for inbound request protection.
func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	e, exists := kl.entries[key]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.entries[key] = e
	}
	e.lastSeen = time.Now()
	kl.mu.Unlock()

	return e.limiter.Allow()
}

// Len returns the number of tracked keys.
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}

// Stop shuts down the cleanup goroutine.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() {
		close(kl.done)
	})
}

func (kl *KeyedLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-kl.done:
			return
		case <-ticker.C:
			kl.evictIdle(time.Now())
		}
	}
}

func (kl *KeyedLimiter) evictIdle(now time.Time) {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	for key, e := range kl.entries {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(kl.entries, key)
		}
	}
}
