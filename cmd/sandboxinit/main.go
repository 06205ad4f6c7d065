// Command sandboxinit applies resource limits to itself and then execs
// the target program, replacing its own process image. It exists because
// os/exec gives Go no child-side pre-exec hook; this binary is that hook.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

type request struct {
	Argv      []string
	Env       []string
	Sandboxed bool
	Limits    limits
}

type limits struct {
	CPUTimeSeconds uint64
	MemoryBytes    uint64
	MaxProcesses   uint64
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(127)
	}
}

func run() error {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		return fmt.Errorf("decode sandbox request: %w", err)
	}
	if len(req.Argv) == 0 {
		return fmt.Errorf("empty argv")
	}

	if req.Sandboxed {
		if err := applyRlimits(req.Limits); err != nil {
			return err
		}
	}

	resolved, err := exec.LookPath(req.Argv[0])
	if err != nil {
		return fmt.Errorf("resolve command: %w", err)
	}

	env := req.Env
	if len(env) == 0 {
		env = os.Environ()
	}
	return unix.Exec(resolved, req.Argv, env)
}

func applyRlimits(l limits) error {
	if l.CPUTimeSeconds > 0 {
		soft := l.CPUTimeSeconds
		if err := unix.Setrlimit(unix.RLIMIT_CPU, &unix.Rlimit{Cur: soft, Max: soft + 1}); err != nil {
			return fmt.Errorf("set rlimit cpu: %w", err)
		}
	}
	if l.MemoryBytes > 0 {
		if err := unix.Setrlimit(unix.RLIMIT_AS, &unix.Rlimit{Cur: l.MemoryBytes, Max: l.MemoryBytes}); err != nil {
			return fmt.Errorf("set rlimit as: %w", err)
		}
	}
	if l.MaxProcesses > 0 {
		if err := applyNprocLimit(l.MaxProcesses); err != nil {
			return err
		}
	}
	return nil
}
