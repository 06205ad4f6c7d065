// Package sandbox composes the workspace, language strategy, and process
// runner into a single execute operation with guaranteed cleanup.
package sandbox

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/dcodex/sandboxrunner/internal/languages"
	"github.com/dcodex/sandboxrunner/internal/process"
	"github.com/dcodex/sandboxrunner/internal/workspace"
)

// ErrUnsupportedLanguage is returned before any workspace is created.
var ErrUnsupportedLanguage = languages.ErrLanguageNotFound

// FailureStage identifies which step of Execute produced a non-success
// Result, so callers (the streaming coordinator) can pick a distinct
// gRPC status without re-deriving it from ErrorMessage text.
type FailureStage int

const (
	// StageNone means Execute succeeded or the pipeline never started.
	StageNone FailureStage = iota
	StageUnsupportedLanguage
	StageWorkspace
	StageCompile
	StageRun
)

// Outcome is the aggregated result of one Execute call.
type Outcome struct {
	process.Result
	Stage FailureStage
}

// Orchestrator composes Workspace + Language registry + Process Runner.
// It is a synchronous building block: it does not know about the
// admission gate or the client stream.
type Orchestrator struct {
	Registry *languages.Registry
	Runner   *process.Runner
}

// NewOrchestrator wires a fresh orchestrator around the given registry and
// runner, both of which are stateless and safe to share across RPCs.
func NewOrchestrator(registry *languages.Registry, runner *process.Runner) *Orchestrator {
	return &Orchestrator{Registry: registry, Runner: runner}
}

// Execute resolves the language, materializes code into a fresh workspace,
// compiles (if the language requires it) and runs it, streaming output
// chunks through sink, and always removes the workspace before returning.
func (o *Orchestrator) Execute(ctx context.Context, language string, code []byte, sink process.Sink) Outcome {
	lang, err := o.Registry.Get(language)
	if err != nil {
		return Outcome{
			Stage:  StageUnsupportedLanguage,
			Result: process.Result{Success: false, ExitCode: -1, ErrorMessage: err.Error()},
		}
	}

	ws, err := workspace.Create()
	if err != nil {
		return Outcome{
			Stage:  StageWorkspace,
			Result: process.Result{Success: false, ExitCode: -1, ErrorMessage: err.Error()},
		}
	}
	defer ws.Remove()

	sourcePath, err := ws.Write(lang.SourceFile, code)
	if err != nil {
		return Outcome{
			Stage:  StageWorkspace,
			Result: process.Result{Success: false, ExitCode: -1, ErrorMessage: err.Error()},
		}
	}

	binaryPath := sourcePath
	if lang.Compile != nil {
		binaryPath = ws.Path(binaryName(lang.SourceFile))
		result := lang.Compile(ctx, o.Runner, sourcePath, binaryPath, sink)
		if !result.Success {
			return Outcome{Stage: StageCompile, Result: result}
		}
	}

	result := lang.Run(ctx, o.Runner, sourcePath, binaryPath, sink, process.SandboxLimits())
	if !result.Success {
		return Outcome{Stage: StageRun, Result: result}
	}
	return Outcome{Stage: StageNone, Result: result}
}

func binaryName(sourceFile string) string {
	return filepath.Base(sourceFile[:len(sourceFile)-len(filepath.Ext(sourceFile))]) + ".bin"
}

// IsUnsupportedLanguage reports whether err is (or wraps) the registry's
// not-found error, letting callers outside this package branch on it
// without importing the languages package directly.
func IsUnsupportedLanguage(err error) bool {
	return errors.Is(err, ErrUnsupportedLanguage)
}
