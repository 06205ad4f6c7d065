//go:build linux

package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// applyNprocLimit caps the number of processes the sandboxed child (and
// anything it forks) may create. Linux only: interpreter launchers on
// other platforms can spawn helper processes that fail under a tight cap.
func applyNprocLimit(max uint64) error {
	if err := unix.Setrlimit(unix.RLIMIT_NPROC, &unix.Rlimit{Cur: max, Max: max}); err != nil {
		return fmt.Errorf("set rlimit nproc: %w", err)
	}
	return nil
}
