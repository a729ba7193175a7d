// Package pathkind models the two disjoint path kinds the
// synchronization engine juggles: SourcePath (a `.rs` file under the
// source tree) and LiteratePath (a `.md` file under the literate
// tree). Keeping them as distinct, construction-validated types means
// the transform pipeline is statically incapable of applying a
// transform in the wrong direction.
package pathkind

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourcePath is a validated path to a `.rs` file rooted at the
// configured source directory.
type SourcePath struct {
	path string
	root string
	ext  string
	peer struct {
		root string
		ext  string
	}
}

// LiteratePath is a validated path to a `.md` file rooted at the
// configured literate directory.
type LiteratePath struct {
	path string
	root string
	ext  string
	peer struct {
		root string
		ext  string
	}
}

// NewSourcePath validates p as living under srcRoot with extension
// srcExt, and records litRoot/litExt so Counterpart can compute the
// peer path without needing the caller to pass the roots again.
func NewSourcePath(p, srcRoot, srcExt, litRoot, litExt string) (SourcePath, error) {
	if err := checkPath("source path", p, srcRoot, srcExt); err != nil {
		return SourcePath{}, err
	}
	sp := SourcePath{path: p, root: srcRoot, ext: srcExt}
	sp.peer.root, sp.peer.ext = litRoot, litExt
	return sp, nil
}

// NewLiteratePath validates p as living under litRoot with extension
// litExt, and records srcRoot/srcExt so Counterpart can compute the
// peer path.
func NewLiteratePath(p, litRoot, litExt, srcRoot, srcExt string) (LiteratePath, error) {
	if err := checkPath("literate path", p, litRoot, litExt); err != nil {
		return LiteratePath{}, err
	}
	lp := LiteratePath{path: p, root: litRoot, ext: litExt}
	lp.peer.root, lp.peer.ext = srcRoot, srcExt
	return lp, nil
}

func checkPath(typeName, p, root, ext string) error {
	wantExt := "." + strings.TrimPrefix(ext, ".")
	if filepath.Ext(p) != wantExt {
		return fmt.Errorf("%s requires %q extension; got %q", typeName, wantExt, p)
	}

	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") || rel == "." {
		return fmt.Errorf("%s must be rooted at %q; got %q", typeName, root, p)
	}
	return nil
}

// String returns the underlying path.
func (sp SourcePath) String() string { return sp.path }

// String returns the underlying path.
func (lp LiteratePath) String() string { return lp.path }

// Counterpart computes the peer LiteratePath: strip the source root
// component, substitute the literate root, replace the extension.
func (sp SourcePath) Counterpart() (LiteratePath, error) {
	rel, err := filepath.Rel(sp.root, sp.path)
	if err != nil {
		return LiteratePath{}, fmt.Errorf("computing counterpart of %q: %w", sp.path, err)
	}
	peer := filepath.Join(sp.peer.root, rel)
	peer = replaceExt(peer, sp.peer.ext)
	return NewLiteratePath(peer, sp.peer.root, sp.peer.ext, sp.root, sp.ext)
}

// Counterpart computes the peer SourcePath: strip the literate root
// component, substitute the source root, replace the extension.
func (lp LiteratePath) Counterpart() (SourcePath, error) {
	rel, err := filepath.Rel(lp.root, lp.path)
	if err != nil {
		return SourcePath{}, fmt.Errorf("computing counterpart of %q: %w", lp.path, err)
	}
	peer := filepath.Join(lp.peer.root, rel)
	peer = replaceExt(peer, lp.peer.ext)
	return NewSourcePath(peer, lp.peer.root, lp.peer.ext, lp.root, lp.ext)
}

func replaceExt(p, ext string) string {
	ext = "." + strings.TrimPrefix(ext, ".")
	trimmed := strings.TrimSuffix(p, filepath.Ext(p))
	return trimmed + ext
}
