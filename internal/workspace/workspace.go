package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Workspace is a private scratch directory scoped to a single encrypt or
// decrypt operation. Anything written into it is treated as secret:
// files are created owner-only and overwritten before removal.
type Workspace struct {
	dir    string
	closed bool
}

// New creates a fresh workspace under the system temp directory with
// owner-only permissions. Callers must Close the workspace when the
// operation finishes, typically via defer.
func New() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "jass-")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	if err := os.Chmod(dir, 0700); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to restrict workspace permissions: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Path returns the workspace directory.
func (w *Workspace) Path() string {
	return w.dir
}

// WriteSecret stores data under name inside the workspace with 0600
// permissions and returns the full path.
func (w *Workspace) WriteSecret(name string, data []byte) (string, error) {
	if w.closed {
		return "", fmt.Errorf("workspace already closed")
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s to workspace: %w", name, err)
	}
	return path, nil
}

// Close removes the workspace and everything in it. File contents are
// overwritten with zeros before removal; the overwrite is best effort
// and removal proceeds regardless. Close is idempotent and safe to defer
// alongside explicit calls.
func (w *Workspace) Close() error {
	if w == nil || w.closed {
		return nil
	}
	w.closed = true

	// Shred first, then remove the tree.
	_ = filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		shred(path)
		return nil
	})

	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("failed to remove workspace: %w", err)
	}
	return nil
}

// shred overwrites a file's contents with zeros in place.
func shred(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer f.Close()

	zeros := make([]byte, 4096)
	remaining := info.Size()
	for remaining > 0 {
		chunk := int64(len(zeros))
		if remaining < chunk {
			chunk = remaining
		}
		n, err := f.Write(zeros[:chunk])
		if err != nil {
			return
		}
		remaining -= int64(n)
	}
	_ = f.Sync()
}
