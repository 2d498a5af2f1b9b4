// Package minifier shrinks rendered markup, structured markup and
// stylesheets. The markup policies are fixed regular expression pipelines so
// their output is reproducible byte for byte.
package minifier

import (
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

// ws matches the ECMAScript whitespace class.
const ws = `[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

var (
	reLineBreak  = regexp.MustCompile(`\r\n|\n|\t`)
	reBetweenTag = regexp.MustCompile(`>` + ws + `+<`)
	reWhitespace = regexp.MustCompile(ws + `{2,}`)
	reComment    = regexp.MustCompile(`(?s)<!--.*?-->`)
)

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// HTML minifies rendered markup. Line breaks and tabs become spaces,
// whitespace between tags is dropped, the rest is collapsed to single spaces
// and comments are removed last.
func HTML(src string) string {
	s := reLineBreak.ReplaceAllString(src, " ")
	s = trim(reBetweenTag.ReplaceAllString(s, "><"))
	s = reWhitespace.ReplaceAllString(s, " ")
	return reComment.ReplaceAllString(s, "")
}

// XML only drops whitespace between tags and trims the result.
func XML(src string) string {
	return trim(reBetweenTag.ReplaceAllString(src, "><"))
}

var m = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	return m
}

// CSS minifies a stylesheet.
func CSS(src string) (string, error) {
	return m.String("text/css", src)
}
