package token

import (
	"sort"
	"unicode/utf8"
)

// LineIndex maps byte offsets of a source text to line/column positions.
type LineIndex struct {
	src    string
	starts []int // byte offset of each line start
}

// NewLineIndex builds an index over src. Lines are split on '\n'; a '\r'
// before it stays part of the previous line.
func NewLineIndex(src string) *LineIndex {
	starts := make([]int, 1, 64)
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// Source returns the indexed text.
func (li *LineIndex) Source() string {
	return li.src
}

// LineCount returns the number of lines in the source.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}

// Position converts a byte offset to a Position. Offsets past the end clamp
// to the end of the source.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.src) {
		offset = len(li.src)
	}
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	col := utf8.RuneCountInString(li.src[li.starts[line]:offset]) + 1
	return Position{Line: line + 1, Column: col, Offset: offset}
}

// Locate returns the Location of src[offset : offset+length].
func (li *LineIndex) Locate(offset, length int) Location {
	end := offset + length
	if end > len(li.src) {
		end = len(li.src)
	}
	pos := li.Position(offset)
	return Location{Position: pos, Raw: li.src[pos.Offset:end]}
}
