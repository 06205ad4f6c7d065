package process

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectSink() (Sink, func() (stdout, stderr []byte)) {
	var mu sync.Mutex
	var out, errb []byte
	sink := func(stdoutChunk, stderrChunk []byte) {
		mu.Lock()
		defer mu.Unlock()
		out = append(out, stdoutChunk...)
		errb = append(errb, stderrChunk...)
	}
	return sink, func() ([]byte, []byte) {
		mu.Lock()
		defer mu.Unlock()
		return append([]byte(nil), out...), append([]byte(nil), errb...)
	}
}

func TestRunCapturesStdout(t *testing.T) {
	r := NewRunner("")
	sink, collected := collectSink()

	res := r.Run(context.Background(), []string{"sh", "-c", "printf hello"}, sink, false, ResourceLimits{})

	require.True(t, res.Success)
	assert.Equal(t, 0, res.ExitCode)
	stdout, stderr := collected()
	assert.Equal(t, "hello", string(stdout))
	assert.Empty(t, stderr)
}

func TestRunCapturesStderrSeparately(t *testing.T) {
	r := NewRunner("")
	sink, collected := collectSink()

	res := r.Run(context.Background(), []string{"sh", "-c", "printf out; printf err 1>&2"}, sink, false, ResourceLimits{})

	require.True(t, res.Success)
	stdout, stderr := collected()
	assert.Equal(t, "out", string(stdout))
	assert.Equal(t, "err", string(stderr))
}

func TestRunNonZeroExit(t *testing.T) {
	r := NewRunner("")
	sink, _ := collectSink()

	res := r.Run(context.Background(), []string{"sh", "-c", "exit 7"}, sink, false, ResourceLimits{})

	assert.False(t, res.Success)
	assert.Equal(t, 7, res.ExitCode)
	assert.NotEmpty(t, res.ErrorMessage)
}

func TestRunEmptyArgv(t *testing.T) {
	r := NewRunner("")
	sink, _ := collectSink()

	res := r.Run(context.Background(), nil, sink, false, ResourceLimits{})

	assert.False(t, res.Success)
	assert.Equal(t, -1, res.ExitCode)
}

func TestRunUnresolvableCommand(t *testing.T) {
	r := NewRunner("")
	sink, _ := collectSink()

	res := r.Run(context.Background(), []string{"dcodex-definitely-not-a-real-binary"}, sink, false, ResourceLimits{})

	assert.False(t, res.Success)
	assert.Equal(t, -1, res.ExitCode)
	assert.Contains(t, res.ErrorMessage, "resolve command")
}

func TestRunContextCancelKillsChild(t *testing.T) {
	r := NewRunner("")
	sink, _ := collectSink()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan Result, 1)
	go func() {
		done <- r.Run(ctx, []string{"sh", "-c", "sleep 30"}, sink, false, ResourceLimits{})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case res := <-done:
		assert.False(t, res.Success)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
