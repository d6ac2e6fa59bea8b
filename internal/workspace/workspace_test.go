package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cellery-io/cellery-dev/internal/testutil"
)

// evalDir resolves symlinks so paths compare equal on systems where the
// temp directory is a symlink (macOS /var -> /private/var).
func evalDir(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("EvalSymlinks(%s) error = %v", dir, err)
	}
	return resolved
}

func TestWorkspace_Accessors(t *testing.T) {
	w := New("/ws/hello.bal", "/ws")
	if file, ok := w.ActiveFilePath(); !ok || file != "/ws/hello.bal" {
		t.Errorf("ActiveFilePath() = %q, %v", file, ok)
	}
	if root, ok := w.WorkspaceRoot(); !ok || root != "/ws" {
		t.Errorf("WorkspaceRoot() = %q, %v", root, ok)
	}

	empty := New("", "")
	if _, ok := empty.ActiveFilePath(); ok {
		t.Error("empty workspace should have no active file")
	}
	if _, ok := empty.WorkspaceRoot(); ok {
		t.Error("empty workspace should have no root")
	}
}

func TestResolve_ExplicitRoot(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteCellFile(t, dir, "cells/hello.bal", "cell")
	root := t.TempDir()

	w, err := Resolve(context.Background(), Options{File: "cells/hello.bal", Root: root, Dir: dir})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got, _ := w.ActiveFilePath(); got != file {
		t.Errorf("ActiveFilePath() = %q, want %q", got, file)
	}
	if got, _ := w.WorkspaceRoot(); got != root {
		t.Errorf("WorkspaceRoot() = %q, want %q", got, root)
	}
}

func TestResolve_NoFile(t *testing.T) {
	dir := t.TempDir()

	w, err := Resolve(context.Background(), Options{Root: dir, Dir: dir})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, ok := w.ActiveFilePath(); ok {
		t.Error("expected no active file")
	}
	if got, ok := w.WorkspaceRoot(); !ok || got != dir {
		t.Errorf("WorkspaceRoot() = %q, %v, want %q", got, ok, dir)
	}
}

func TestResolve_MissingFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := Resolve(context.Background(), Options{File: "nope.bal", Dir: dir}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolve_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "cells"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := Resolve(context.Background(), Options{File: "cells", Dir: dir}); err == nil {
		t.Error("expected error for directory argument")
	}
}

func TestResolve_GitTopLevel(t *testing.T) {
	testutil.SkipIfNoGit(t)

	repo := testutil.SetupTestRepo(t)
	file := testutil.WriteCellFile(t, repo, "cells/nested/hello.bal", "cell")

	w, err := Resolve(context.Background(), Options{File: file, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	got, ok := w.WorkspaceRoot()
	if !ok {
		t.Fatal("expected a workspace root")
	}
	if evalDir(t, got) != evalDir(t, repo) {
		t.Errorf("WorkspaceRoot() = %q, want %q", got, repo)
	}
}

func TestResolve_FallsBackToDir(t *testing.T) {
	testutil.SkipIfNoGit(t)

	dir := t.TempDir()
	if _, ok := GitTopLevel(context.Background(), dir); ok {
		t.Skip("temp dir is inside a git repository")
	}

	w, err := Resolve(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got, _ := w.WorkspaceRoot(); got != dir {
		t.Errorf("WorkspaceRoot() = %q, want %q", got, dir)
	}
}
