package languages

import (
	"context"

	"github.com/dcodex/sandboxrunner/internal/process"
)

func pythonLanguage() Language {
	return Language{
		ID:         "python",
		Name:       "Python",
		SourceFile: "Main.py",
		Compile:    compilePython,
		Run:        runPython,
	}
}

// compilePython runs a syntax-check only, unsandboxed: the interpreter is
// trusted the same way a compiler is, so early syntax errors surface as
// compiler-style diagnostics before any sandboxed execution is attempted.
func compilePython(ctx context.Context, runner *process.Runner, sourcePath, binaryPath string, sink process.Sink) process.Result {
	return runner.Run(ctx, []string{"python3", "-m", "py_compile", sourcePath}, sink, false, process.DefaultLimits())
}

// runPython executes the source itself under the sandbox helper; the
// "binary" for an interpreted language is the source file passed to python3.
func runPython(ctx context.Context, runner *process.Runner, sourcePath, binaryPath string, sink process.Sink, limits process.ResourceLimits) process.Result {
	return runner.Run(ctx, []string{"python3", sourcePath}, sink, true, limits)
}
