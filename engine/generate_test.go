package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nasreen123/tango/config"
	"github.com/Nasreen123/tango/pathkind"
	"github.com/Nasreen123/tango/planner"
	"github.com/Nasreen123/tango/timestamp"
)

func TestGenerateToLiterateBackdatesMtime(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root)
	srcPath := filepath.Join(cfg.SourceRoot(), "hello.rs")
	mustWriteFile(t, srcPath, "// Says hello.\nfn hello() {}\n")

	sourceState, err := timestamp.ReadMtime(srcPath)
	if err != nil {
		t.Fatalf("reading source mtime: %v", err)
	}
	sourceTime, _ := sourceState.Get()

	sp, err := pathkind.NewSourcePath(srcPath, cfg.SourceRoot(), "rs", cfg.LiterateRoot(), "md")
	if err != nil {
		t.Fatalf("NewSourcePath: %v", err)
	}
	lp, err := sp.Counterpart()
	if err != nil {
		t.Fatalf("Counterpart: %v", err)
	}

	items := []planner.SourceTransform{{Origin: sp, Target: lp, SourceTime: sourceTime}}
	if err := generateToLiterate(context.Background(), cfg, items); err != nil {
		t.Fatalf("generateToLiterate: %v", err)
	}

	litState, err := timestamp.ReadMtime(lp.String())
	if err != nil {
		t.Fatalf("reading literate mtime: %v", err)
	}
	litTime, present := litState.Get()
	if !present {
		t.Fatal("expected literate file to exist")
	}
	if !litTime.SameLowPrecision(sourceTime) {
		t.Errorf("expected backdated mtime %s, got %s", sourceTime.FormatHuman(), litTime.FormatHuman())
	}
}

func TestGenerateToLiterateEmptyItemsIsNoop(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root)
	if err := generateToLiterate(context.Background(), cfg, nil); err != nil {
		t.Fatalf("expected no error for empty item list, got %v", err)
	}
}

func TestGenerateToSourceCollectsWarnings(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root)
	litPath := filepath.Join(cfg.LiterateRoot(), "hello.md")
	mustWriteFile(t, litPath, "```rust\nfn hello() {}\n```\n\n[playground](https://play.rust-lang.org/?code=not-the-code&version=nightly)\n")

	litState, err := timestamp.ReadMtime(litPath)
	if err != nil {
		t.Fatalf("reading literate mtime: %v", err)
	}
	litTime, _ := litState.Get()

	lp, err := pathkind.NewLiteratePath(litPath, cfg.LiterateRoot(), "md", cfg.SourceRoot(), "rs")
	if err != nil {
		t.Fatalf("NewLiteratePath: %v", err)
	}
	sp, err := lp.Counterpart()
	if err != nil {
		t.Fatalf("Counterpart: %v", err)
	}

	items := []planner.LiterateTransform{{Origin: lp, Target: sp, SourceTime: litTime}}
	warnings, err := generateToSource(context.Background(), cfg, items)
	if err != nil {
		t.Fatalf("generateToSource: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", warnings)
	}
	if warnings[0].Path != lp.String() {
		t.Errorf("expected warning path %s, got %s", lp.String(), warnings[0].Path)
	}

	if _, err := os.Stat(sp.String()); err != nil {
		t.Errorf("expected source counterpart to be written: %v", err)
	}
}
