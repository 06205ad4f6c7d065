// Package ratelimit adapts the teacher's internal/limiter.RateLimiter to
// gRPC: a global token bucket plus a per-peer token bucket, sitting in
// front of (not replacing) the admission gate's concurrency bound.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/dcodex/sandboxrunner/internal/metrics"
)

// Limiter enforces a global request rate and a per-peer request rate.
type Limiter struct {
	global       *rate.Limiter
	perPeer      sync.Map
	perPeerRate  rate.Limit
	perPeerBurst int
}

// New builds a Limiter. globalRPS/perPeerRPS are steady-state rates;
// the global bucket's burst is twice its rate, matching the teacher's
// internal/limiter.NewRateLimiter sizing.
func New(globalRPS, perPeerRPS float64, perPeerBurst int) *Limiter {
	return &Limiter{
		global:       rate.NewLimiter(rate.Limit(globalRPS), int(globalRPS)*2),
		perPeerRate:  rate.Limit(perPeerRPS),
		perPeerBurst: perPeerBurst,
	}
}

func (l *Limiter) peerLimiter(peer string) *rate.Limiter {
	if v, ok := l.perPeer.Load(peer); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(l.perPeerRate, l.perPeerBurst)
	actual, _ := l.perPeer.LoadOrStore(peer, limiter)
	return actual.(*rate.Limiter)
}

// Allow reports whether a request from peer may proceed, consuming a
// token from both the global and the per-peer bucket in that order.
func (l *Limiter) Allow(peer string) bool {
	if !l.global.Allow() {
		metrics.RateLimitHits.Inc()
		return false
	}
	if !l.peerLimiter(peer).Allow() {
		metrics.RateLimitHits.Inc()
		return false
	}
	return true
}

// Forget drops the per-peer bucket for peer, reclaiming memory for
// connections that will not be seen again. Call from a periodic sweep,
// not per-request.
func (l *Limiter) Forget(peer string) {
	l.perPeer.Delete(peer)
}
