// Package messages loads the message catalogs declared by template directives
// and merges them into the context a template is rendered with.
package messages

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/MarkoPapic/static-website-builder/model"
	"gopkg.in/yaml.v3"
)

const (
	// LanguagePlaceholder is replaced by the target language in catalog paths.
	LanguagePlaceholder = "<lang>"
	// LanguageKey holds the target language in a localized context.
	LanguageKey = "__lang"
)

var (
	ErrCatalog               = errors.New("cannot load message catalog")
	ErrUnresolvedPlaceholder = errors.New("language placeholder without a target language")
)

// Catalog is a flat key/value record of messages.
type Catalog map[string]any

// Merge overlays the catalogs in order; keys of later catalogs replace those
// of earlier ones. Nested values are not merged.
func Merge(cs ...Catalog) Catalog {
	ret := Catalog{}
	for _, c := range cs {
		maps.Copy(ret, c)
	}
	return ret
}

// CatalogPath substitutes lang into the path pattern of a directive.
func CatalogPath(pattern, lang string) (string, error) {
	if !strings.Contains(pattern, LanguagePlaceholder) {
		return pattern, nil
	}
	if lang == "" {
		return "", fmt.Errorf("%w: '%s'", ErrUnresolvedPlaceholder, pattern)
	}
	return strings.ReplaceAll(pattern, LanguagePlaceholder, lang), nil
}

// Load reads a catalog file. Yaml files are recognized by extension, anything
// else is parsed as json. The top level value must be an object.
func Load(fn string) (Catalog, error) {
	buf, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}

	var c map[string]any
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buf, &c)
	default:
		err = json.Unmarshal(buf, &c)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalog, fn, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s: not an object", ErrCatalog, fn)
	}
	return Catalog(c), nil
}

// Resolve builds the context for one template and target language. Catalog
// paths are relative to dir, the directory of the template. An empty lang
// resolves the unlocalized context.
func Resolve(directives []model.Directive, dir, lang string) (Catalog, error) {
	cs := make([]Catalog, 0, len(directives)+1)
	for _, d := range directives {
		fn, err := CatalogPath(d.Path, lang)
		if err != nil {
			return nil, fmt.Errorf("[%s] %w", d.Pos, err)
		}
		if !filepath.IsAbs(fn) {
			fn = filepath.Join(dir, fn)
		}
		c, err := Load(fn)
		if err != nil {
			return nil, fmt.Errorf("[%s] %w", d.Pos, err)
		}
		cs = append(cs, c)
	}
	if lang != "" {
		cs = append(cs, Catalog{LanguageKey: lang})
	}
	return Merge(cs...), nil
}
