// Package coordinator owns the per-RPC worker/write-side pairing that
// replaces the original gRPC-C++ ServerWriteReactor state machine. Go's
// synchronous stream.Send already guarantees at most one write in flight,
// so the coordinator only needs a FIFO channel and a dedicated writer
// goroutine rather than the original's writing/finished mutex machine.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dcodex/sandboxrunner/internal/admission"
	"github.com/dcodex/sandboxrunner/internal/metrics"
	"github.com/dcodex/sandboxrunner/internal/pb"
	"github.com/dcodex/sandboxrunner/internal/sandbox"
)

// chunkBufferSize is the producer/consumer handoff depth: large enough
// that a brief stall in the write-side does not stall the pipe drain,
// small enough to bound memory for a client that stops reading.
const chunkBufferSize = 32

var (
	// ErrUnsupportedLanguage surfaces a request naming an unregistered
	// language tag as a distinguished error rather than an OK-with-no-
	// output close (REDESIGN FLAG: unsupported language gets its own status).
	ErrUnsupportedLanguage = sandbox.ErrUnsupportedLanguage

	// ErrSpawnFailure surfaces a workspace failure (creating the directory
	// or writing the source) as a distinguished error rather than an
	// OK-with-no-output close. A process that fails to start is reported
	// through the compile or run stage instead and does not produce it.
	ErrSpawnFailure = errors.New("sandbox spawn failure")
)

// Stream is the subset of the server-side Execute stream the coordinator
// needs, kept as an interface so tests can supply a fake rather than
// standing up a real gRPC transport.
type Stream interface {
	Send(*pb.ExecutionLog) error
	Context() context.Context
}

// Coordinator runs one RPC's Orchestrator invocation and serializes its
// output chunks onto the client stream in the order they were produced.
type Coordinator struct {
	orchestrator *sandbox.Orchestrator
	gate         *admission.Gate
}

// New builds a Coordinator around an already-admitted slot: callers must
// have called gate.Admit() and obtained true before constructing one.
func New(orchestrator *sandbox.Orchestrator, gate *admission.Gate) *Coordinator {
	return &Coordinator{orchestrator: orchestrator, gate: gate}
}

// Run drives the Orchestrator against language/code, forwarding every
// sink invocation to stream in order, and releases the admission slot on
// every exit path. A non-nil error is returned for the two distinguished
// failure classes (unsupported language, workspace failure) and for a
// failed stream.Send (a disconnected client); compile and run failures
// are reported to the client as stderr chunks
// and a nil error, matching spec.md §7's "stream closes OK" behavior.
func (c *Coordinator) Run(stream Stream, language string, code []byte) error {
	defer c.gate.Release()

	metrics.ActiveSandboxes.Inc()
	defer metrics.ActiveSandboxes.Dec()

	start := time.Now()
	chunks := make(chan *pb.ExecutionLog, chunkBufferSize)

	g, ctx := errgroup.WithContext(stream.Context())

	g.Go(func() error {
		defer close(chunks)
		sink := func(stdout, stderr []byte) {
			enqueue(ctx, chunks, stdout, stderr)
		}
		outcome := c.orchestrator.Execute(ctx, language, code, sink)
		recordOutcome(language, outcome, time.Since(start))
		return classify(outcome)
	})

	g.Go(func() error {
		for chunk := range chunks {
			if err := stream.Send(chunk); err != nil {
				return err
			}
			metrics.StreamChunksSent.WithLabelValues(language).Inc()
		}
		return nil
	})

	return g.Wait()
}

func enqueue(ctx context.Context, chunks chan<- *pb.ExecutionLog, stdout, stderr []byte) {
	if len(stdout) > 0 {
		select {
		case chunks <- &pb.ExecutionLog{StdoutChunk: clone(stdout)}:
		case <-ctx.Done():
		}
	}
	if len(stderr) > 0 {
		select {
		case chunks <- &pb.ExecutionLog{StderrChunk: clone(stderr)}:
		case <-ctx.Done():
		}
	}
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

func classify(outcome sandbox.Outcome) error {
	switch outcome.Stage {
	case sandbox.StageUnsupportedLanguage:
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, outcome.ErrorMessage)
	case sandbox.StageWorkspace:
		return fmt.Errorf("%w: %s", ErrSpawnFailure, outcome.ErrorMessage)
	default:
		return nil
	}
}

func recordOutcome(language string, outcome sandbox.Outcome, elapsed time.Duration) {
	status := "success"
	phase := "run"
	switch outcome.Stage {
	case sandbox.StageCompile:
		status = "compile_error"
		phase = "compile"
	case sandbox.StageRun:
		status = "runtime_error"
	case sandbox.StageUnsupportedLanguage, sandbox.StageWorkspace:
		status = "error"
	}
	metrics.ExecutionsTotal.WithLabelValues(language, status).Inc()
	metrics.ExecutionDuration.WithLabelValues(language, phase).Observe(float64(elapsed.Milliseconds()))
}
