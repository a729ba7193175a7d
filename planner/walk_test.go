package planner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWalkTreeMissingRootIsEmpty(t *testing.T) {
	files, err := walkTree(filepath.Join(t.TempDir(), "does-not-exist"), ".rs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestWalkTreeSkipsHiddenEntriesAndWrongExtension(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a.rs"), "fn a() {}\n")
	mustWrite(t, filepath.Join(root, "b.md"), "# not rust\n")
	mustWrite(t, filepath.Join(root, ".hidden.rs"), "fn hidden() {}\n")
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mustWrite(t, filepath.Join(root, ".git", "c.rs"), "fn c() {}\n")
	mustWrite(t, filepath.Join(root, "nested", "d.rs"), "fn d() {}\n")

	files, err := walkTree(root, ".rs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{
		filepath.Join(root, "a.rs"):        true,
		filepath.Join(root, "nested", "d.rs"): true,
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want keys of %v", files, want)
	}
	for _, f := range files {
		if !want[f] {
			t.Errorf("unexpected file in result: %s", f)
		}
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
