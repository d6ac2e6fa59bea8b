// Package workspace resolves the active file and workspace root for a CLI
// invocation and exposes them as a host.Workspace.
package workspace

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Workspace is a resolved active file and root. Either may be absent.
type Workspace struct {
	file string
	root string
}

// New returns a Workspace with fixed values. Empty strings mean absent.
func New(file, root string) *Workspace {
	return &Workspace{file: file, root: root}
}

// ActiveFilePath implements host.Workspace.
func (w *Workspace) ActiveFilePath() (string, bool) {
	return w.file, w.file != ""
}

// WorkspaceRoot implements host.Workspace.
func (w *Workspace) WorkspaceRoot() (string, bool) {
	return w.root, w.root != ""
}

// Options controls how Resolve locates the workspace.
type Options struct {
	// File is the active file argument. Relative paths are resolved
	// against the current directory.
	File string
	// Root overrides workspace discovery when set.
	Root string
	// Dir is the directory discovery starts from. Defaults to the
	// current directory.
	Dir string
}

// Resolve builds a Workspace from opts. The root is, in order: opts.Root,
// the git top-level of the directory holding the active file (or Dir), and
// finally Dir itself.
func Resolve(ctx context.Context, opts Options) (*Workspace, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	var file string
	if opts.File != "" {
		file = opts.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		file = filepath.Clean(file)
		info, err := os.Stat(file)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", opts.File, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory, expected a cell file", opts.File)
		}
	}

	if opts.Root != "" {
		root, err := filepath.Abs(opts.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve workspace %s: %w", opts.Root, err)
		}
		return New(file, root), nil
	}

	start := dir
	if file != "" {
		start = filepath.Dir(file)
	}
	if root, ok := GitTopLevel(ctx, start); ok {
		return New(file, root), nil
	}
	return New(file, dir), nil
}

// GitTopLevel returns the top-level directory of the git repository
// containing dir.
func GitTopLevel(ctx context.Context, dir string) (string, bool) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", false
	}
	return filepath.Clean(root), true
}
