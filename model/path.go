package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrOutsideSource = errors.New("path is outside of the source directory")

// PathInfo describes a source file. It is derived once per file and is
// read-only afterwards.
type PathInfo struct {
	Dir  string // absolute directory
	Base string // file name with extension
	Stem string // file name without extension
	Ext  string // extension including the leading dot
}

// ParsePath splits fn into its components. Relative paths are made absolute
// against the working directory.
func ParsePath(fn string) PathInfo {
	if abs, err := filepath.Abs(fn); err == nil {
		fn = abs
	}
	base := filepath.Base(fn)
	ext := filepath.Ext(base)
	return PathInfo{
		Dir:  filepath.Dir(fn),
		Base: base,
		Stem: base[:len(base)-len(ext)],
		Ext:  ext,
	}
}

// Path returns the absolute path of the file.
func (pi PathInfo) Path() string {
	return filepath.Join(pi.Dir, pi.Base)
}

// RelDir returns the directory of the file relative to root. The source root
// itself yields ".".
func (pi PathInfo) RelDir(root string) (string, error) {
	rel, err := filepath.Rel(root, pi.Dir)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideSource, pi.Path())
	}
	return rel, nil
}

// OutputPath computes where the artifact for pi is written:
//
//	output/[lang/]relDir/stem+ext
//
// An empty lang produces the unlocalized location, an empty ext keeps the
// original extension.
func OutputPath(pi PathInfo, cfg *Config, lang, ext string) (string, error) {
	rel, err := pi.RelDir(cfg.SourceDir)
	if err != nil {
		return "", err
	}
	if ext == "" {
		ext = pi.Ext
	}
	return filepath.Join(cfg.OutputDir, lang, rel, pi.Stem+ext), nil
}

// normalizePath resolves fn against refdir and cleans it.
func normalizePath(refdir string, fn string) (string, error) {
	if fn == "" {
		return fn, nil
	}
	if !filepath.IsAbs(fn) {
		fn = filepath.Join(refdir, fn)
	}
	return filepath.Abs(fn)
}

// within reports whether path is dir itself or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
