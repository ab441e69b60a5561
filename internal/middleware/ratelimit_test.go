package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	l := NewInMemoryRateLimiter(3, time.Minute)
	assert.True(t, l.Allow("ip1"))
	assert.True(t, l.Allow("ip1"))
	assert.True(t, l.Allow("ip1"))
	assert.False(t, l.Allow("ip1"))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	l := NewInMemoryRateLimiter(1, time.Minute)
	assert.True(t, l.Allow("ip1"))
	assert.False(t, l.Allow("ip1"))
	assert.True(t, l.Allow("ip2"))
}

func TestRateLimiterWindowResets(t *testing.T) {
	l := NewInMemoryRateLimiter(1, 10*time.Millisecond)
	assert.True(t, l.Allow("ip1"))
	assert.False(t, l.Allow("ip1"))
	time.Sleep(20 * time.Millisecond)
	assert.True(t, l.Allow("ip1"))
}
