package languages

import (
	"context"

	"github.com/dcodex/sandboxrunner/internal/process"
)

func cppLanguage() Language {
	return Language{
		ID:         "cpp",
		Name:       "C++",
		SourceFile: "Main.cpp",
		Compile:    compileCpp,
		Run:        runCpp,
	}
}

// compileCpp runs the trusted g++ toolchain directly, unsandboxed: the
// compiler is not submitted code. DefaultLimits is passed along, but an
// unsandboxed run skips the helper, so no resource limits are applied.
func compileCpp(ctx context.Context, runner *process.Runner, sourcePath, binaryPath string, sink process.Sink) process.Result {
	argv := []string{"g++", "-std=c++17", "-O2", sourcePath, "-o", binaryPath}
	return runner.Run(ctx, argv, sink, false, process.DefaultLimits())
}

// runCpp executes the compiled binary through the sandbox helper so
// SandboxLimits are installed before the submission's code runs.
func runCpp(ctx context.Context, runner *process.Runner, sourcePath, binaryPath string, sink process.Sink, limits process.ResourceLimits) process.Result {
	return runner.Run(ctx, []string{binaryPath}, sink, true, limits)
}
