//go:build !linux

package main

// applyNprocLimit is a no-op outside Linux, matching the original
// server's #ifdef __linux__ guard around RLIMIT_NPROC.
func applyNprocLimit(max uint64) error {
	return nil
}
