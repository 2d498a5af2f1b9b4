package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is a 1-based line:column location inside a source buffer.
type Position struct {
	Line   int
	Column int
}

// PositionOf converts a byte offset into buf to a line:column position.
// CR, LF and CRLF all terminate a line; a leading UTF-8 BOM is skipped.
func PositionOf(buf []byte, offset int) Position {
	cur := 0
	if strings.HasPrefix(string(buf[:min(3, len(buf))]), "\xef\xbb\xbf") {
		cur = 3
	}
	if offset > len(buf) {
		offset = len(buf)
	}

	pos := Position{Line: 1}
	lineStart := cur
	for cur < offset {
		c := buf[cur]
		cur++
		switch c {
		case '\n':
			pos.Line++
			lineStart = cur
		case '\r':
			if cur < offset && buf[cur] == '\n' {
				cur++
			}
			pos.Line++
			lineStart = cur
		}
	}
	if lineStart > offset {
		lineStart = offset
	}
	pos.Column = 1 + utf8.RuneCount(buf[lineStart:offset])
	return pos
}

func (p Position) Valid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
