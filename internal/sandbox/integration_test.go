//go:build integration

package sandbox

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcodex/sandboxrunner/internal/languages"
	"github.com/dcodex/sandboxrunner/internal/process"
)

// These tests invoke the real g++/python3 toolchains and the real
// sandboxinit helper on PATH, matching spec.md §8 scenarios 1-3. They are
// excluded from the default `go test ./...` run by the integration build
// tag, since a CI runner with neither toolchain installed should still
// pass the package-level fake-strategy tests in orchestrator_test.go.

func skipUnlessToolPresent(t *testing.T, name string) {
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not on PATH", name)
	}
}

func TestIntegrationCppHelloWorld(t *testing.T) {
	skipUnlessToolPresent(t, "g++")
	skipUnlessToolPresent(t, "dcodex-sandbox-init")

	orc := NewOrchestrator(languages.NewRegistry(), process.NewRunner(""))
	var stdout []byte
	sink := func(out, errb []byte) { stdout = append(stdout, out...) }

	src := []byte(`#include <iostream>
int main() { std::cout << "hello from cpp" << std::endl; return 0; }`)

	outcome := orc.Execute(context.Background(), "cpp", src, sink)

	require.True(t, outcome.Success, outcome.ErrorMessage)
	assert.Contains(t, string(stdout), "hello from cpp")
}

func TestIntegrationPythonHelloWorld(t *testing.T) {
	skipUnlessToolPresent(t, "python3")
	skipUnlessToolPresent(t, "dcodex-sandbox-init")

	orc := NewOrchestrator(languages.NewRegistry(), process.NewRunner(""))
	var stdout []byte
	sink := func(out, errb []byte) { stdout = append(stdout, out...) }

	outcome := orc.Execute(context.Background(), "python", []byte(`print("hello from python")`), sink)

	require.True(t, outcome.Success, outcome.ErrorMessage)
	assert.Contains(t, string(stdout), "hello from python")
}

func TestIntegrationCppCompileErrorReportsStageCompile(t *testing.T) {
	skipUnlessToolPresent(t, "g++")

	orc := NewOrchestrator(languages.NewRegistry(), process.NewRunner(""))
	sink := func(out, errb []byte) {}

	outcome := orc.Execute(context.Background(), "cpp", []byte("this is not valid c++"), sink)

	assert.False(t, outcome.Success)
	assert.Equal(t, StageCompile, outcome.Stage)
}
