package planner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// walkTree returns every file under root whose extension matches ext,
// skipping any entry (file or directory) whose name begins with a
// dot. A missing root is treated as an empty tree rather than an
// error, so a fresh checkout with no literate side yet is not fatal.
func walkTree(root, ext string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ext {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}
