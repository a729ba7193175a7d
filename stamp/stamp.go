// Package stamp manages the persistent witness file that records the
// mtime of the last successful synchronization run.
package stamp

import (
	"os"

	"github.com/Nasreen123/tango/tangoerr"
	"github.com/Nasreen123/tango/timestamp"
)

// Guard wraps reads and writes of the stamp file at Path.
type Guard struct {
	Path string
}

// New builds a Guard for the stamp file at path.
func New(path string) *Guard {
	return &Guard{Path: path}
}

// Read returns the stamp's current state: absent if the file does not
// exist yet, present(timestamp) otherwise.
func (g *Guard) Read() (timestamp.MtimeState, error) {
	state, err := timestamp.ReadMtime(g.Path)
	if err != nil {
		return timestamp.Absent, tangoerr.Wrap("reading stamp", err)
	}
	return state, nil
}

// Create ensures the stamp file exists, doing nothing if it already
// does. The file's contents are always empty; only its mtime matters.
func (g *Guard) Create() error {
	f, err := os.OpenFile(g.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return tangoerr.Wrap("creating stamp", err)
	}
	return tangoerr.Wrap("creating stamp", f.Close())
}

// Advance sets the stamp file's mtime to newest, the maximum source
// timestamp observed across a run's inputs. The file must already
// exist (call Create first).
func (g *Guard) Advance(newest timestamp.Timestamp) error {
	atime, mtime := newest.ToChtimesArgs()
	return tangoerr.Wrap("advancing stamp", os.Chtimes(g.Path, atime, mtime))
}
