package languages

import (
	"context"

	"github.com/dcodex/sandboxrunner/internal/process"
)

// CompileFunc invokes a compiler against sourcePath, producing binaryPath
// inside the same workspace. Strategies with no compile step leave this nil.
type CompileFunc func(ctx context.Context, runner *process.Runner, sourcePath, binaryPath string, sink process.Sink) process.Result

// RunFunc executes the compiled binary or the interpreter against
// sourcePath, streaming program output through sink under sandbox limits.
type RunFunc func(ctx context.Context, runner *process.Runner, sourcePath, binaryPath string, sink process.Sink, limits process.ResourceLimits) process.Result

// Language is the per-language strategy: source file naming, an optional
// compile step, and the run step.
type Language struct {
	ID         string
	Name       string
	SourceFile string
	Compile    CompileFunc
	Run        RunFunc
}
