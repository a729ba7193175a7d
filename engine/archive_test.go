package engine

import (
	"archive/tar"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nasreen123/tango/config"
)

func TestDetectArchiveKind(t *testing.T) {
	cases := map[string]archiveKind{
		"project":          archiveNone,
		"project.tar":      archiveTar,
		"project.tar.gz":   archiveTarGz,
		"project.tgz":      archiveTarGz,
		"project.tar.zst":  archiveTarZst,
		"project.tar.zstd": archiveTarZst,
		"project.tzst":     archiveTarZst,
	}
	for name, want := range cases {
		if got := detectArchiveKind(name); got != want {
			t.Errorf("detectArchiveKind(%q) = %v, want %v", name, got, want)
		}
	}
}

func writeTar(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	tw := tar.NewWriter(f)
	defer tw.Close()

	for name, content := range files {
		hdr := &tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing header for %s: %v", name, err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("writing content for %s: %v", name, err)
		}
	}
}

// TestRunArchiveExtractsSyncsAndRepacks covers the archive-ingestion
// expansion: a .tar snapshot of a project is extracted, synchronized
// like a plain directory, and repacked in place.
func TestRunArchiveExtractsSyncsAndRepacks(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "project.tar")
	writeTar(t, archivePath, map[string]string{
		"src/hello.rs": "// Says hello.\nfn hello() {}\n",
	})

	cfg := config.Default(archivePath)

	result, err := RunArchive(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RunArchive: %v", err)
	}
	if len(result.Plan.ToLiterate) != 1 {
		t.Fatalf("expected one scheduled transform, got %d", len(result.Plan.ToLiterate))
	}

	readDir, err := os.MkdirTemp("", "tango-archive-check-*")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	defer os.RemoveAll(readDir)

	if err := extractArchive(archivePath, archiveTar, readDir); err != nil {
		t.Fatalf("extracting repacked archive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(readDir, "src", "hello.md")); err != nil {
		t.Errorf("expected repacked archive to contain generated literate file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(readDir, "tango.stamp")); err != nil {
		t.Errorf("expected repacked archive to contain the stamp: %v", err)
	}
}

// TestRunArchivePlainDirectoryDelegatesToRun confirms a non-archive
// root is passed straight through to Run.
func TestRunArchivePlainDirectoryDelegatesToRun(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root)
	mustWriteFile(t, filepath.Join(cfg.SourceRoot(), "hello.rs"), "fn hello() {}\n")

	result, err := RunArchive(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RunArchive: %v", err)
	}
	if len(result.Plan.ToLiterate) != 1 {
		t.Fatalf("expected one scheduled transform, got %d", len(result.Plan.ToLiterate))
	}
}
