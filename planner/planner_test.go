package planner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Nasreen123/tango/config"
	"github.com/Nasreen123/tango/tangoerr"
	"github.com/Nasreen123/tango/timestamp"
)

func chtime(t *testing.T, path string, when time.Time) {
	t.Helper()
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func TestBuildSchedulesFreshSourceFile(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root)
	mustWrite(t, filepath.Join(cfg.SourceRoot(), "hello.rs"), "fn hello() {}\n")

	plan, warnings, err := Build(cfg, timestamp.Absent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(plan.ToLiterate) != 1 {
		t.Fatalf("expected exactly one scheduled transform, got %d", len(plan.ToLiterate))
	}
	if len(plan.ToSource) != 0 {
		t.Errorf("expected no reverse transforms, got %d", len(plan.ToSource))
	}
}

func TestBuildSkipsUnrelatedMarkdown(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root)
	mustWrite(t, filepath.Join(cfg.LiterateRoot(), "README.md"), "# Just prose\n\nNothing tango-managed here.\n")

	plan, _, err := Build(cfg, timestamp.Absent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.ToSource) != 0 {
		t.Errorf("expected no scheduled reverse transforms, got %d", len(plan.ToSource))
	}
	if len(plan.SkippedLiterate) != 1 {
		t.Errorf("expected README.md to be recorded as skipped, got %v", plan.SkippedLiterate)
	}
}

func TestBuildBothSidesPresentNoStampIsError(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root)
	srcPath := filepath.Join(cfg.SourceRoot(), "hello.rs")
	litPath := filepath.Join(cfg.LiterateRoot(), "hello.md")
	mustWrite(t, srcPath, "fn hello() {}\n")
	mustWrite(t, litPath, "```rust\nfn hello() {}\n```\n")

	now := time.Now()
	chtime(t, srcPath, now)
	chtime(t, litPath, now.Add(time.Hour))

	_, _, err := Build(cfg, timestamp.Absent)
	if err == nil {
		t.Fatal("expected an error")
	}
	if ce, ok := err.(*tangoerr.CheckError); !ok || ce.Kind != tangoerr.NoStampExists {
		t.Errorf("got %v, want NoStampExists", err)
	}
}
