package model

import (
	"strings"
)

// Kind selects the processor that handles a source file.
type Kind int

const (
	KindCopy             = Kind(iota) // transfer verbatim
	KindRender                        // handlebars template -> html
	KindStyles                        // css, minified when enabled
	KindStructuredMarkup              // svg/xml, whitespace between tags collapsed when enabled
	KindIgnore                        // authoring-only, no output
)

func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "copy"
	case KindRender:
		return "render"
	case KindStyles:
		return "styles"
	case KindStructuredMarkup:
		return "structured-markup"
	case KindIgnore:
		return "ignore"
	default:
		return "<invalid>"
	}
}

// PartialPrefix marks template files that are registered as partials
// instead of being rendered to their own output.
const PartialPrefix = "_"

// RenderedExt is the extension written for rendered templates.
const RenderedExt = ".html"

type dispatchEntry struct {
	ext  string
	kind Kind
}

var dispatch = []dispatchEntry{
	{".hb", KindRender},
	{".hbs", KindRender},
	{".handlebars", KindRender},
	{".css", KindStyles},
	{".svg", KindStructuredMarkup},
	{".xml", KindStructuredMarkup},
	{".md", KindIgnore},
	{".markdown", KindIgnore},
}

// KindOf maps a file extension (with the leading dot) to its processor kind.
// Unknown extensions are copied.
func KindOf(ext string) Kind {
	ext = strings.ToLower(ext)
	for _, e := range dispatch {
		if e.ext == ext {
			return e.kind
		}
	}
	return KindCopy
}

// IsTemplateExt reports whether ext belongs to a handlebars template.
func IsTemplateExt(ext string) bool {
	return KindOf(ext) == KindRender
}

// IsPartial reports whether the file is a partial: a template whose stem
// starts with PartialPrefix.
func (pi PathInfo) IsPartial() bool {
	return IsTemplateExt(pi.Ext) && strings.HasPrefix(pi.Stem, PartialPrefix)
}
