package admission

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmitUpToCapacity(t *testing.T) {
	g := NewGate(2)

	assert.True(t, g.Admit())
	assert.True(t, g.Admit())
	assert.False(t, g.Admit())
	assert.Equal(t, int64(2), g.InFlight())
}

func TestRejectedAdmitDoesNotNetIncrement(t *testing.T) {
	g := NewGate(1)

	assert.True(t, g.Admit())
	assert.False(t, g.Admit())
	assert.False(t, g.Admit())
	assert.Equal(t, int64(1), g.InFlight())
}

func TestReleaseReturnsCounterToZero(t *testing.T) {
	g := NewGate(5)

	for i := 0; i < 3; i++ {
		assert.True(t, g.Admit())
	}
	for i := 0; i < 3; i++ {
		g.Release()
	}
	assert.Equal(t, int64(0), g.InFlight())
}

func TestAdmissionBoundUnderConcurrency(t *testing.T) {
	g := NewGate(10)
	var wg sync.WaitGroup
	var attemptWg sync.WaitGroup
	var admittedCount int64
	var mu sync.Mutex
	release := make(chan struct{})

	// Every admitted goroutine holds its slot until release is closed, so
	// admittedCount is the peak number held simultaneously rather than a
	// cumulative count across goroutines that admit-then-release early.
	for i := 0; i < 50; i++ {
		wg.Add(1)
		attemptWg.Add(1)
		go func() {
			defer wg.Done()
			ok := g.Admit()
			if ok {
				mu.Lock()
				admittedCount++
				mu.Unlock()
			}
			attemptWg.Done()
			if ok {
				<-release
				g.Release()
			}
		}()
	}

	attemptWg.Wait() // all 50 have attempted Admit; admittedCount is now the peak
	assert.LessOrEqual(t, admittedCount, int64(10))

	close(release)
	wg.Wait()

	assert.Equal(t, int64(0), g.InFlight())
}
