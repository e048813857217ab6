// Package token defines source positions, ranges and comments shared by the
// parser adapter, the syntax tree and the lint engine.
package token

import "sort"

// Position represents a location in the source code.
type Position struct {
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number (bytes)
	Offset int `json:"offset"` // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Range is a half-open byte range [Start, End) in one source file.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains returns true if the range contains the given offset.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Encloses returns true if other lies entirely within r.
func (r Range) Encloses(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Clamp limits the range to [0, size].
func (r Range) Clamp(size int) Range {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > size {
			return size
		}
		return v
	}
	r.Start, r.End = clamp(r.Start), clamp(r.End)
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

// LineIndex maps byte offsets to line/column positions.
type LineIndex struct {
	starts []int // byte offset of the first byte of each line
	size   int
}

// NewLineIndex builds a line index for src.
func NewLineIndex(src []byte) *LineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, size: len(src)}
}

// LineCount returns the number of lines in the source.
func (l *LineIndex) LineCount() int {
	return len(l.starts)
}

// Line returns the 1-based line number containing offset.
func (l *LineIndex) Line(offset int) int {
	return sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset })
}

// Position converts a byte offset into a Position.
func (l *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > l.size {
		offset = l.size
	}
	line := l.Line(offset)
	return Position{
		Line:   line,
		Column: offset - l.starts[line-1] + 1,
		Offset: offset,
	}
}

// LineStart returns the byte offset where the given 1-based line begins.
func (l *LineIndex) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(l.starts) {
		return l.size
	}
	return l.starts[line-1]
}
