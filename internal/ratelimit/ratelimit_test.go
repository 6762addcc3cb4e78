package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiter_AllowWithinBurst(t *testing.T) {
	kl := New(1, 3)
	defer kl.Stop()

	// Burst of 3 should allow three immediate requests.
	assert.True(t, kl.Allow("client-a"))
	assert.True(t, kl.Allow("client-a"))
	assert.True(t, kl.Allow("client-a"))

	// Fourth is over the burst.
	assert.False(t, kl.Allow("client-a"))
}

func TestKeyedLimiter_KeysAreIndependent(t *testing.T) {
	kl := New(1, 1)
	defer kl.Stop()

	assert.True(t, kl.Allow("client-a"))
	assert.False(t, kl.Allow("client-a"))

	// A different key has its own bucket.
	assert.True(t, kl.Allow("client-b"))
}

func TestKeyedLimiter_Refill(t *testing.T) {
	// 100 rps refills a token every 10ms.
	kl := New(100, 1)
	defer kl.Stop()

	assert.True(t, kl.Allow("client-a"))
	assert.False(t, kl.Allow("client-a"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, kl.Allow("client-a"))
}

func TestKeyedLimiter_EvictIdle(t *testing.T) {
	kl := New(1, 1)
	defer kl.Stop()

	kl.Allow("client-a")
	kl.Allow("client-b")
	assert.Equal(t, 2, kl.Len())

	// Entries idle longer than the TTL are evicted.
	kl.evictIdle(time.Now().Add(idleTTL + time.Minute))
	assert.Equal(t, 0, kl.Len())
}

func TestKeyedLimiter_EvictKeepsRecent(t *testing.T) {
	kl := New(1, 1)
	defer kl.Stop()

	kl.Allow("client-a")

	kl.evictIdle(time.Now())
	assert.Equal(t, 1, kl.Len())
}

func TestKeyedLimiter_StopIsIdempotent(t *testing.T) {
	kl := New(1, 1)
	kl.Stop()
	kl.Stop()
}
