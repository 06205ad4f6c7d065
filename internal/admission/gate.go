// Package admission bounds the number of concurrently in-flight sandboxed
// jobs with a single atomic counter. There is no queueing: a request that
// arrives at capacity is rejected immediately.
package admission

import "sync/atomic"

// Gate is a process-wide singleton bounding concurrent sandboxed jobs.
type Gate struct {
	capacity int64
	inFlight atomic.Int64
}

// NewGate builds a Gate with the given hard capacity.
func NewGate(capacity int64) *Gate {
	return &Gate{capacity: capacity}
}

// Admit atomically fetches-and-adds the counter. If the pre-increment
// value was already at capacity, the increment is undone and Admit
// returns false: the caller must not call Release for a rejected Admit.
func (g *Gate) Admit() bool {
	if g.inFlight.Add(1) > g.capacity {
		g.inFlight.Add(-1)
		return false
	}
	return true
}

// Release decrements the counter. Call exactly once per successful Admit,
// on every teardown path.
func (g *Gate) Release() {
	g.inFlight.Add(-1)
}

// InFlight reports the current number of admitted, not-yet-released jobs.
// Intended for metrics gauges, not for admission decisions.
func (g *Gate) InFlight() int64 {
	return g.inFlight.Load()
}

// Capacity returns the gate's configured hard bound.
func (g *Gate) Capacity() int64 {
	return g.capacity
}
