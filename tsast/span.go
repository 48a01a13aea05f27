package tsast

import (
	"fmt"
	"sort"
)

// Span is a half-open byte range [Start, End) into a source buffer.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// IsZero returns true if the span is empty and starts at offset zero.
func (s Span) IsZero() bool { return s.Start == 0 && s.End == 0 }

// Contains reports whether offset lies within the span.
func (s Span) Contains(offset int) bool { return offset >= s.Start && offset < s.End }

// Overlaps reports whether two spans share at least one byte, or
// whether they are both insertions at the same offset.
func (s Span) Overlaps(o Span) bool {
	if s.Len() == 0 && o.Len() == 0 {
		return s.Start == o.Start
	}
	return s.Start < o.End && o.Start < s.End
}

func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// LineIndex maps byte offsets to positions.
type LineIndex struct {
	starts []int
}

// NewLineIndex builds a line index for src.
func NewLineIndex(src []byte) *LineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts}
}

// Position returns the position of offset.
func (li *LineIndex) Position(offset int) Position {
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Position{Line: line + 1, Column: offset - li.starts[line] + 1}
}

