package builder

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/MarkoPapic/static-website-builder/model"
)

// Partials maps partial names to their template source. A table lives for a
// single build.
type Partials map[string]string

// PartialName derives the name a partial is included by: its directory
// relative to the source root, slash separated, followed by the stem.
// Partials in the source root are named by their stem alone.
func PartialName(pi model.PathInfo, root string) (string, error) {
	rel, err := pi.RelDir(root)
	if err != nil {
		return "", err
	}
	return path.Join(filepath.ToSlash(rel), pi.Stem), nil
}

// Register stores the file as a partial if it is one. It reports whether the
// file was consumed.
func (p Partials) Register(pi model.PathInfo, root string, log *slog.Logger) (bool, error) {
	if !pi.IsPartial() {
		return false, nil
	}
	name, err := PartialName(pi, root)
	if err != nil {
		return false, err
	}
	buf, err := os.ReadFile(pi.Path())
	if err != nil {
		return false, err
	}
	if _, dup := p[name]; dup {
		log.Warn("partial registered twice, keeping the last one", "name", name, "file", pi.Path())
	}
	log.Debug("registering partial", "name", name)
	p[name] = string(buf)
	return true, nil
}
