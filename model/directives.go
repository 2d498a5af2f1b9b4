package model

import (
	"regexp"
	"strings"
)

// directives are single-line html comments declaring the message catalogs a
// template needs: `<!-- @swb messages <path> -->`

const DirectiveKeyword = "swb"

var reDirective = regexp.MustCompile(`<!--[ \t]*@` + DirectiveKeyword + `[ \t]+messages[ \t]+(\S[^\r\n]*?)[ \t]*-->`)

// Directive is one catalog path pattern declared by a template.
type Directive struct {
	Path string
	Pos  Position
}

func (d Directive) String() string {
	if !d.Pos.Valid() {
		return d.Path
	}
	return d.Pos.String() + " " + d.Path
}

// ExtractDirectives returns every directive found in src, in source order.
// Duplicates are preserved.
func ExtractDirectives(src []byte) []Directive {
	var ret []Directive
	for _, m := range reDirective.FindAllSubmatchIndex(src, -1) {
		b, e := m[2], m[3]
		ret = append(ret, Directive{
			Path: strings.TrimSpace(string(src[b:e])),
			Pos:  PositionOf(src, m[0]),
		})
	}
	return ret
}

// DirectivePaths strips the positions off ds.
func DirectivePaths(ds []Directive) []string {
	ret := make([]string, len(ds))
	for i, d := range ds {
		ret[i] = d.Path
	}
	return ret
}
