package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinBurstSucceeds(t *testing.T) {
	l := New(100, 100, 5)

	assert.True(t, l.Allow("peer-a"))
}

func TestAllowPerPeerExhaustion(t *testing.T) {
	l := New(1000, 1, 1)

	assert.True(t, l.Allow("peer-a"))
	assert.False(t, l.Allow("peer-a"))
}

func TestAllowIsolatesPeers(t *testing.T) {
	l := New(1000, 1, 1)

	assert.True(t, l.Allow("peer-a"))
	assert.False(t, l.Allow("peer-a"))
	assert.True(t, l.Allow("peer-b"))
}

func TestForgetRemovesPeerBucket(t *testing.T) {
	l := New(1000, 1, 1)

	assert.True(t, l.Allow("peer-a"))
	assert.False(t, l.Allow("peer-a"))

	l.Forget("peer-a")
	assert.True(t, l.Allow("peer-a"))
}
