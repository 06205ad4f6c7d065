// Package workspace manages the per-job temporary directory that holds a
// submission's source and compiled artifacts.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const dirPrefix = "dcodex_run_"

// Workspace is a scoped, owner-only-permissions directory under the OS
// temp root. Callers must pair Create with a deferred Remove on every
// exit path, including error paths.
type Workspace struct {
	Dir string
}

// Create materializes a fresh unique directory under the system temp
// root, mirroring the original's mkdtemp("/tmp/dcodex_run_XXXXXX").
func Create() (*Workspace, error) {
	dir, err := os.MkdirTemp("", dirPrefix)
	if err != nil {
		return nil, fmt.Errorf("create temporary directory: %w", err)
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("restrict temporary directory permissions: %w", err)
	}
	return &Workspace{Dir: dir}, nil
}

// Remove recursively deletes the workspace. It is safe to call more than
// once; errors are the caller's to log, never fatal to an in-flight RPC.
func (w *Workspace) Remove() error {
	if w == nil || w.Dir == "" {
		return nil
	}
	return os.RemoveAll(w.Dir)
}

// Write truncates and writes content to name within the workspace,
// returning the absolute path written.
func (w *Workspace) Write(name string, content []byte) (string, error) {
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("write workspace file %s: %w", name, err)
	}
	return path, nil
}

// Path joins name onto the workspace directory without writing anything,
// used to compute derived paths such as a compiled binary's location.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}
