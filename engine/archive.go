package engine

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"

	"github.com/Nasreen123/tango/config"
	"github.com/Nasreen123/tango/tangoerr"
)

// archiveKind identifies the packaging, if any, wrapping the tree a
// run should operate on.
type archiveKind int

const (
	archiveNone archiveKind = iota
	archiveTar
	archiveTarGz
	archiveTarZst
)

// detectArchiveKind sniffs cfg.Root's extension the same way the
// reference log tooling sniffs an input file's extension, so a
// packaged snapshot can stand in for a plain project directory.
func detectArchiveKind(path string) archiveKind {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return archiveTarGz
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tar.zstd"), strings.HasSuffix(lower, ".tzst"):
		return archiveTarZst
	case strings.HasSuffix(lower, ".tar"):
		return archiveTar
	default:
		return archiveNone
	}
}

// RunArchive runs a synchronization pass against cfg.Root, transparently
// extracting it first if it names an archive file rather than a plain
// directory, and repacking the result back into an archive of the same
// kind afterward. Directories pass straight through to Run.
func RunArchive(ctx context.Context, cfg config.Config) (Result, error) {
	kind := detectArchiveKind(cfg.Root)
	if kind == archiveNone {
		return Run(ctx, cfg)
	}

	archivePath := cfg.Root
	workDir, err := os.MkdirTemp("", "tango-archive-*")
	if err != nil {
		return Result{}, &tangoerr.ArchiveError{Path: archivePath, Op: "extract", Err: err}
	}
	defer os.RemoveAll(workDir)

	if err := extractArchive(archivePath, kind, workDir); err != nil {
		return Result{}, &tangoerr.ArchiveError{Path: archivePath, Op: "extract", Err: err}
	}

	extracted := cfg
	extracted.Root = workDir

	result, err := Run(ctx, extracted)
	if err != nil {
		return result, err
	}

	if !result.DryRun {
		if err := repackArchive(workDir, kind, archivePath); err != nil {
			return result, &tangoerr.ArchiveError{Path: archivePath, Op: "repack", Err: err}
		}
	}

	return result, nil
}

func archiveReader(f *os.File, kind archiveKind) (io.Reader, func() error, error) {
	switch kind {
	case archiveTarGz:
		threads := runtime.GOMAXPROCS(0)
		if threads < 1 {
			threads = 1
		}
		if threads > 8 {
			threads = 8
		}
		r, err := pgzip.NewReaderN(f, 1<<20, threads)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	case archiveTarZst:
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return dec.IOReadCloser(), dec.Close, nil
	default:
		return f, func() error { return nil }, nil
	}
}

func extractArchive(archivePath string, kind archiveKind, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	r, closeReader, err := archiveReader(f, kind)
	if err != nil {
		return err
	}
	defer closeReader()

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(destDir, filepath.Clean(hdr.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) && target != filepath.Clean(destDir) {
			return &tangoerr.ArchiveError{Path: archivePath, Op: "extract", Err: errUnsafeArchiveEntry{hdr.Name}}
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode&0o777))
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			if err := os.Chtimes(target, hdr.ModTime, hdr.ModTime); err != nil {
				return err
			}
		}
	}
}

type errUnsafeArchiveEntry struct{ name string }

func (e errUnsafeArchiveEntry) Error() string {
	return "archive entry escapes extraction directory: " + e.name
}

func archiveWriter(out *os.File, kind archiveKind) (io.Writer, func() error, error) {
	switch kind {
	case archiveTarGz:
		gw := pgzip.NewWriter(out)
		return gw, gw.Close, nil
	case archiveTarZst:
		zw, err := zstd.NewWriter(out)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	default:
		return out, func() error { return nil }, nil
	}
}

func repackArchive(srcDir string, kind archiveKind, archivePath string) error {
	tmpPath := archivePath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	w, closeWriter, err := archiveWriter(out, kind)
	if err != nil {
		out.Close()
		os.Remove(tmpPath)
		return err
	}

	tw := tar.NewWriter(w)

	walkErr := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			_, err = io.Copy(tw, f)
			f.Close()
			if err != nil {
				return err
			}
		}
		return nil
	})

	if walkErr != nil {
		tw.Close()
		closeWriter()
		out.Close()
		os.Remove(tmpPath)
		return walkErr
	}
	if err := tw.Close(); err != nil {
		closeWriter()
		out.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := closeWriter(); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, archivePath)
}
