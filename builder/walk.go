package builder

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Walk visits every file below root depth first. Entries for which skip
// returns true are left out; a skipped directory is not descended into. The
// root itself is never tested and a missing root is a configuration error.
// Symbolic links to directories are followed and their files are reported
// below the link. Sibling order is not part of the contract.
func Walk(root string, skip func(path string) bool, visit func(path string) error) error {
	if err := checkSource(root); err != nil {
		return err
	}
	w := walker{skip: skip, visit: visit, active: map[string]struct{}{}}
	return w.walk(root)
}

type walker struct {
	skip  func(path string) bool
	visit func(path string) error

	// resolved directories currently being walked, a link back to any of
	// them would never terminate
	active map[string]struct{}
}

func (w *walker) walk(dir string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if _, ok := w.active[resolved]; ok {
		return nil
	}
	w.active[resolved] = struct{}{}
	defer delete(w.active, resolved)

	return filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == resolved {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		path = filepath.Join(dir, rel)

		if w.skip != nil && w.skip(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			stat, err := os.Stat(path)
			if err != nil {
				return err
			}
			if stat.IsDir() {
				return w.walk(path)
			}
		}
		return w.visit(path)
	})
}
